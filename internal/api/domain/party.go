package domain

// Party identifies one side of a conversation: the applicant ("user")
// or the company ("company"). The same two-valued tag doubles as the
// sender, reader and archiver type on the messaging endpoints.
type Party string

const (
	PartyUser    Party = "user"
	PartyCompany Party = "company"
)

// ParseParty validates a raw tag from a request body.
func ParseParty(s string) (Party, error) {
	switch Party(s) {
	case PartyUser, PartyCompany:
		return Party(s), nil
	default:
		return "", ErrInvalidParty
	}
}

// Opposite returns the counterpart side.
func (p Party) Opposite() Party {
	if p == PartyUser {
		return PartyCompany
	}
	return PartyUser
}

func (p Party) String() string {
	return string(p)
}

// Principal is a resolved sender reference: a User id when Type is
// PartyUser, a CompanyUser id when Type is PartyCompany. Resolution
// against the directory tables happens before any authorization check.
type Principal struct {
	Type Party
	ID   int64
}
