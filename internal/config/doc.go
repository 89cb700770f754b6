// Package config provides configuration structures and utilities for vcindex.
// It defines where examples are read from, where the curated remote list
// lives, how screenshots are taken, and how the index is rendered.
package config
