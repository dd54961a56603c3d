package wire

// Message is implemented by every shape this package defines. It mirrors the
// Marshal/Unmarshal pair a protoc-gen-go file would produce, hand-written
// against protowire so the module carries no generated code and no protoc
// dependency.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}
