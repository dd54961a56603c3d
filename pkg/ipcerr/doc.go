/*
Package ipcerr maps between types.IpcFailure, the fabric's single failure
taxonomy, and google.golang.org/grpc's status codes, the taxonomy gRPC
actually puts on the wire. Every transport call goes through ToStatus on
the way out and FromStatus on the way back in, so a handler never has to
know whether its caller was local or remote.
*/
package ipcerr
