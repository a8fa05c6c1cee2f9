package courier

// A Key names a value courier middleware stores in a request's context.
type Key string

const (
	IpAddrKey    Key = "IpAddrKey"
	RequestIDKey Key = "RequestIDKey"
)

func (k Key) String() string { return "courier." + string(k) }
