package handler

import (
	"en13813/internal/conformity"
	dErrors "en13813/pkg/domain-errors"
)

// BatchItemResponse is one entry of a batch response: either a result or an
// error for that set.
type BatchItemResponse struct {
	Index  int                `json:"index"`
	Result *conformity.Result `json:"result,omitempty"`
	Error  *ItemError         `json:"error,omitempty"`
}

type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResponse lists items in request order.
type BatchResponse struct {
	AllPassed bool                `json:"all_passed"`
	Items     []BatchItemResponse `json:"items"`
}

func FromBatch(items []conformity.BatchItem) BatchResponse {
	resp := BatchResponse{AllPassed: conformity.AllPassed(items), Items: make([]BatchItemResponse, 0, len(items))}
	for i, it := range items {
		item := BatchItemResponse{Index: i, Result: it.Result}
		if it.Err != nil {
			item.Error = &ItemError{Code: string(dErrors.CodeOf(it.Err)), Message: it.Err.Error()}
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
