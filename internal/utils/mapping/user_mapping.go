package mapping

import (
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
)

// ToUser decodes a users-collection document. Some legacy user documents lack
// the uid field; the store id fills in so consumers always see an identity.
func ToUser(doc portsrepo.Document) (domain.User, error) {
	var u domain.User
	if err := DecodeDocument(doc, &u); err != nil {
		return domain.User{}, err
	}
	if u.UserID == "" {
		u.UserID = doc.ID
	}
	return u, nil
}

// ToUserSlice decodes a slice of users-collection documents.
func ToUserSlice(docs []portsrepo.Document) ([]domain.User, error) {
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		u, err := ToUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// ToCompany decodes a companies-collection document.
func ToCompany(doc portsrepo.Document) (domain.Company, error) {
	var c domain.Company
	err := DecodeDocument(doc, &c)
	return c, err
}

// ToClient decodes a clients-collection document.
func ToClient(doc portsrepo.Document) (domain.Client, error) {
	var c domain.Client
	err := DecodeDocument(doc, &c)
	return c, err
}
