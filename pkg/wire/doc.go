/*
Package wire implements IntelliRouter's on-the-wire binary schema: a
length-delimited, field-numbered encoding built directly on
google.golang.org/protobuf/encoding/protowire rather than on protoc-generated
stubs. Every shape in this package hand-implements Marshal/Unmarshal the way
a generated .pb.go file would, which keeps the evolution rules of spec §6
explicit in code instead of hidden in codegen:

  - a field is only ever added, never renumbered
  - a removed field's number is reserved (skipped, commented, never reused)
  - unknown field numbers encountered on read are skipped, not rejected,
    so a newer writer and an older reader stay compatible

pkg/transport registers the Codec in this package with gRPC so RPCs carry
these shapes directly; pkg/eventbus uses the same Marshal/Unmarshal for
published event payloads.
*/
package wire
