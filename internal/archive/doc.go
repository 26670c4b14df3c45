// Package archive compresses a staging directory into a tar.gz or zip file.
//
// Entry names are rooted at the directory's base name and always use forward
// slashes. Compression uses klauspost/compress for both gzip and deflate.
package archive
