package mapping

import (
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
)

// ToReviewRequest decodes a reviewRequest-collection document.
func ToReviewRequest(doc portsrepo.Document) (domain.ReviewRequest, error) {
	var r domain.ReviewRequest
	err := DecodeDocument(doc, &r)
	return r, err
}

// ToReviewRequestSlice decodes a slice of reviewRequest-collection documents.
func ToReviewRequestSlice(docs []portsrepo.Document) ([]domain.ReviewRequest, error) {
	reqs := make([]domain.ReviewRequest, 0, len(docs))
	for _, doc := range docs {
		r, err := ToReviewRequest(doc)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

// ReviewRequestFields encodes a request into store fields for create ops.
func ReviewRequestFields(req domain.ReviewRequest) (map[string]any, error) {
	return EncodeFields(req)
}
