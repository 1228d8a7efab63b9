// Package config defines the format-agnostic build manifest model and the
// Loader interface that concrete formats (HCL) implement. Keeping the model
// separate from its on-disk format lets the pipeline evolve independently
// of the manifest syntax.
package config
