// Package esm fetches package files from the esm.sh CDN.
//
// npm and JSR do not expose README documents through their metadata APIs
// in a convenient form. esm.sh serves any file from a published package,
// so READMEs are read from there:
//
//	https://esm.sh/<npm-name>/README.md
//	https://esm.sh/jsr/@<scope>/<name>/README.md
package esm
