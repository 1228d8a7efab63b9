// Package hcl implements config.Loader for the synthplan.hcl build
// manifest. Parsing goes through hclparse and gohcl into schema structs,
// which then translate onto the format-agnostic config model.
package hcl
