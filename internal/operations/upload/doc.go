// Package upload issues the single PutObject request for one local file.
//
// The whole file is read into memory before the request is built. There is
// no multipart path and no retry: a failed request is returned to the caller.
package upload
