// Package scanner walks a local folder and lists the files to upload.
//
// The listing is eager: the whole tree is walked before any upload starts so
// the total file count is known up front for progress reporting.
package scanner
