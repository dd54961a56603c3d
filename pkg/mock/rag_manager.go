package mock

import (
	"context"
	"fmt"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

// RAGManager is a deterministic contracts.RAGManagerClient/Server.
type RAGManager struct {
	Index    *Table[contracts.IndexDocumentRequest, contracts.IndexDocumentResponse]
	Retrieve *Table[contracts.RetrieveRequest, contracts.RetrieveResponse]
	Augment  *Table[contracts.AugmentRequestRequest, contracts.AugmentRequestResponse]
	Get      *Table[contracts.GetDocumentRequest, contracts.GetDocumentResponse]
	Delete   *Table[contracts.DeleteDocumentRequest, contracts.DeleteDocumentResponse]
	List     *Table[contracts.ListDocumentsRequest, contracts.ListDocumentsResponse]
}

func indexDocumentKey(r contracts.IndexDocumentRequest) string {
	if r.RequestID != "" {
		return r.RequestID
	}
	return r.DocumentID
}

// retrieveKey and augmentKey fingerprint on the full request value: neither
// carries a request-id (both are Read-class, per §4.7), and their embedding
// vectors have no natural scalar key.
func retrieveKey(r contracts.RetrieveRequest) string {
	return fmt.Sprintf("%v|%d|%v", r.Embedding, r.TopK, r.MetadataFilter)
}

func augmentKey(r contracts.AugmentRequestRequest) string {
	return fmt.Sprintf("%s|%v|%d", r.Input, r.Embedding, r.MaxContextLength)
}

func listDocumentsKey(r contracts.ListDocumentsRequest) string {
	return fmt.Sprintf("%v", r.MetadataFilter)
}

func NewRAGManager() *RAGManager {
	return &RAGManager{
		Index:    NewTable(indexDocumentKey, Outcome[contracts.IndexDocumentResponse]{}),
		Retrieve: NewTable(retrieveKey, Outcome[contracts.RetrieveResponse]{}),
		Augment:  NewTable(augmentKey, Outcome[contracts.AugmentRequestResponse]{}),
		Get: NewTable(func(r contracts.GetDocumentRequest) string { return r.DocumentID },
			Outcome[contracts.GetDocumentResponse]{}),
		Delete: NewTable(func(r contracts.DeleteDocumentRequest) string { return r.DocumentID },
			Outcome[contracts.DeleteDocumentResponse]{}),
		List: NewTable(listDocumentsKey, Outcome[contracts.ListDocumentsResponse]{}),
	}
}

func (m *RAGManager) IndexDocument(ctx context.Context, req contracts.IndexDocumentRequest) (contracts.IndexDocumentResponse, error) {
	o := m.Index.Lookup(req)
	return o.Response, o.Err
}

func (m *RAGManager) Retrieve(ctx context.Context, req contracts.RetrieveRequest) (contracts.RetrieveResponse, error) {
	o := m.Retrieve.Lookup(req)
	return o.Response, o.Err
}

func (m *RAGManager) AugmentRequest(ctx context.Context, req contracts.AugmentRequestRequest) (contracts.AugmentRequestResponse, error) {
	o := m.Augment.Lookup(req)
	return o.Response, o.Err
}

func (m *RAGManager) GetDocument(ctx context.Context, req contracts.GetDocumentRequest) (contracts.GetDocumentResponse, error) {
	o := m.Get.Lookup(req)
	return o.Response, o.Err
}

func (m *RAGManager) DeleteDocument(ctx context.Context, req contracts.DeleteDocumentRequest) (contracts.DeleteDocumentResponse, error) {
	o := m.Delete.Lookup(req)
	return o.Response, o.Err
}

func (m *RAGManager) ListDocuments(ctx context.Context, req contracts.ListDocumentsRequest) (contracts.ListDocumentsResponse, error) {
	o := m.List.Lookup(req)
	return o.Response, o.Err
}

var (
	_ contracts.RAGManagerClient = (*RAGManager)(nil)
	_ contracts.RAGManagerServer = (*RAGManager)(nil)
)
