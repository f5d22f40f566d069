package container

// ContextualBuilder implements the fluent contextual override API.
//
//	r.When("photo-gallery").Needs("storage").Give("s3Storage")
type ContextualBuilder struct {
	registry  *Registry
	requester string
	needs     string
}

// Needs specifies which token the requester depends on.
func (b *ContextualBuilder) Needs(token string) *ContextualBuilder {
	b.needs = token
	return b
}

// Give names the definition injected in place of the needed token.
func (b *ContextualBuilder) Give(name string) {
	b.registry.mu.Lock()
	defer b.registry.mu.Unlock()

	if _, ok := b.registry.contextual[b.requester]; !ok {
		b.registry.contextual[b.requester] = make(map[string]string)
	}
	b.registry.contextual[b.requester][b.needs] = name
}

// GiveValue registers value under a name private to the requester and gives it.
//
//	r.When("uploader").Needs("maxSize").GiveValue(10 << 20)
func (b *ContextualBuilder) GiveValue(value any) {
	name := b.requester + "#" + b.needs
	b.registry.Value(name, value)
	b.Give(name)
}
