// Command curator is the CLI for curating asset libraries made of container
// files: moving assets into catalog folders, extracting and deleting them,
// editing metadata, bundling containers for sharing, and maintaining the
// asset index.
package main
