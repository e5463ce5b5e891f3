// Package doublons finds duplicate regular files in a directory tree.
//
// It walks the tree using fastwalk, orders the files by size, and clusters
// byte-identical files into classes, noting for each class whether every
// member shares the anchor's permission bits.
package doublons
