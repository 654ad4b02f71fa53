// Package loader provides document loaders: in memory, from a file system,
// over HTTP, from S3, and combinators for caching and chaining them.
package loader
