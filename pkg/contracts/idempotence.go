package contracts

// IdempotenceClass tags an operation per §4.7 of the fabric's retry-safety
// rules. pkg/resilience's Retry does not read it: whether a failure is
// retried depends on the failure kind alone, whatever the operation's class.
type IdempotenceClass int

const (
	// Read operations (get, list, find) are freely retried.
	Read IdempotenceClass = iota
	// ClientKeyedWrite operations accept a caller-supplied request-id; the
	// server deduplicates by that id within a short window, so the client
	// may retry freely too.
	ClientKeyedWrite
	// UnclassifiedWrite operations carry no request-id; they are retried
	// only on Transport/Connection, and only when the first attempt never
	// reached the server (no acknowledgement was seen).
	UnclassifiedWrite
)

func (c IdempotenceClass) String() string {
	switch c {
	case Read:
		return "read"
	case ClientKeyedWrite:
		return "client_keyed_write"
	case UnclassifiedWrite:
		return "unclassified_write"
	default:
		return "unknown"
	}
}

// OperationDescriptor documents one contract operation's retry-safety and
// authorization requirements, independent of its request/response shapes.
type OperationDescriptor struct {
	Method      string
	Idempotence IdempotenceClass
	Roles       []string
	Streaming   bool
}

// Roles maps a logical method name to the roles a caller's token must carry.
// It implements transport.RequiredRoles.
type Roles map[string][]string

// RolesFor returns the roles required by method, or nil if method requires
// none (or is unknown — the caller is expected to reject unknown methods
// upstream of the role check).
func (r Roles) RolesFor(method string) []string { return r[method] }

// Merge returns a new Roles combining r with others, later maps winning on
// key collision. Used to build one transport.RequiredRoles spanning every
// contract a gateway hosts.
func Merge(maps ...Roles) Roles {
	out := make(Roles)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
