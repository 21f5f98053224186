package blob

// ObjectURL is a process local reference to a registered blob, comparable to
// the urls created by URL.createObjectURL() in a browser.
//
// Failing to call Revoke() keeps the blob in memory for the lifetime of its
// registry.
type ObjectURL struct {
	registry *Registry
	id       string
	raw      string
}

func (u *ObjectURL) String() string {
	return u.raw
}

func (u *ObjectURL) ID() string {
	return u.id
}

func (u *ObjectURL) Blob() (*Blob, error) {
	return u.registry.Get(u.id)
}

// Revoke releases the referenced blob. It is safe to call it more than once.
func (u *ObjectURL) Revoke() bool {
	return u.registry.revoke(u.id)
}
