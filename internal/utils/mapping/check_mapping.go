package mapping

import (
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
)

// ToCheck decodes a checks-collection document into a domain check.
func ToCheck(doc portsrepo.Document) (domain.Check, error) {
	var c domain.Check
	err := DecodeDocument(doc, &c)
	return c, err
}

// ToCheckSlice decodes a slice of checks-collection documents.
func ToCheckSlice(docs []portsrepo.Document) ([]domain.Check, error) {
	checks := make([]domain.Check, 0, len(docs))
	for _, doc := range docs {
		c, err := ToCheck(doc)
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, nil
}
