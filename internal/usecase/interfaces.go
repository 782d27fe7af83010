package usecase

// Principal resolves the acting user. There is no sign-in flow yet, so the
// only implementation is a fixed address from configuration.
type Principal interface {
	Email() string
}

type StaticPrincipal string

func (p StaticPrincipal) Email() string {
	return string(p)
}
