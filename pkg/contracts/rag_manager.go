package contracts

import (
	"context"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/wire"
)

const (
	MethodIndexDocument     = "RAGManager.IndexDocument"
	MethodRetrieve          = "RAGManager.Retrieve"
	MethodAugmentRequest    = "RAGManager.AugmentRequest"
	MethodGetDocument       = "RAGManager.GetDocument"
	MethodDeleteDocument    = "RAGManager.DeleteDocument"
	MethodListDocuments     = "RAGManager.ListDocuments"
)

// RAGManagerRoles declares the roles required by every RAG Manager
// operation.
var RAGManagerRoles = Roles{
	MethodIndexDocument:  {"manage_rag_index"},
	MethodRetrieve:       {"query_rag_index"},
	MethodAugmentRequest: {"query_rag_index"},
	MethodGetDocument:    {"query_rag_index"},
	MethodDeleteDocument: {"manage_rag_index"},
	MethodListDocuments:  {"query_rag_index"},
}

// IndexDocumentRequest chunks Content into pieces no larger than
// ChunkSize, overlapping by ChunkOverlap, before embedding and indexing.
type IndexDocumentRequest struct {
	DocumentID   string
	Content      string
	ChunkSize    int
	ChunkOverlap int
	Metadata     map[string]string
	RequestID    string
}

func (r IndexDocumentRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.DocumentID)
	w.PutString(2, r.Content)
	w.PutVarint(3, uint64(r.ChunkSize))
	w.PutVarint(4, uint64(r.ChunkOverlap))
	for k, v := range r.Metadata {
		pair := metadataPair{key: k, value: v}
		b, err := pair.Marshal()
		if err != nil {
			return nil, err
		}
		w.PutBytes(5, b)
	}
	w.PutString(6, r.RequestID)
	return w.Bytes(), nil
}

func (r *IndexDocumentRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.DocumentID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Content = s
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.ChunkSize = int(u)
		case 4:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.ChunkOverlap = int(u)
		case 5:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var pair metadataPair
			if err := pair.Unmarshal(b); err != nil {
				return err
			}
			if r.Metadata == nil {
				r.Metadata = make(map[string]string)
			}
			r.Metadata[pair.key] = pair.value
		case 6:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.RequestID = s
		}
		return nil
	})
}

type IndexDocumentResponse struct {
	DocumentID string
	ChunkCount int
}

func (r IndexDocumentResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.DocumentID)
	w.PutVarint(2, uint64(r.ChunkCount))
	return w.Bytes(), nil
}

func (r *IndexDocumentResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.DocumentID = s
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.ChunkCount = int(u)
		}
		return nil
	})
}

// RetrieveRequest finds the TopK chunks nearest Embedding, restricted to
// chunks whose metadata matches every entry in MetadataFilter.
type RetrieveRequest struct {
	Embedding      []float32
	TopK           int
	MetadataFilter map[string]string
}

func (r RetrieveRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, f := range r.Embedding {
		w.PutRepeatedVarint(1, uint64(float32Bits(f)))
	}
	w.PutVarint(2, uint64(r.TopK))
	for k, v := range r.MetadataFilter {
		pair := metadataPair{key: k, value: v}
		b, err := pair.Marshal()
		if err != nil {
			return nil, err
		}
		w.PutBytes(3, b)
	}
	return w.Bytes(), nil
}

func (r *RetrieveRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Embedding = append(r.Embedding, float32FromBits(uint32(u)))
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.TopK = int(u)
		case 3:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var pair metadataPair
			if err := pair.Unmarshal(b); err != nil {
				return err
			}
			if r.MetadataFilter == nil {
				r.MetadataFilter = make(map[string]string)
			}
			r.MetadataFilter[pair.key] = pair.value
		}
		return nil
	})
}

// RetrievedChunk is one scored result of a Retrieve call.
type RetrievedChunk struct {
	DocumentID string
	ChunkText  string
	Score      float32
}

func (c RetrievedChunk) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, c.DocumentID)
	w.PutString(2, c.ChunkText)
	w.PutVarint(3, uint64(float32Bits(c.Score)))
	return w.Bytes(), nil
}

func (c *RetrievedChunk) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			c.DocumentID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			c.ChunkText = s
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			c.Score = float32FromBits(uint32(u))
		}
		return nil
	})
}

type RetrieveResponse struct {
	Chunks []RetrievedChunk
}

func (r RetrieveResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, c := range r.Chunks {
		if err := w.PutMessage(1, &c); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (r *RetrieveResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var c RetrievedChunk
			if err := c.Unmarshal(b); err != nil {
				return err
			}
			r.Chunks = append(r.Chunks, c)
		}
		return nil
	})
}

// AugmentRequestRequest bounds the retrieved context injected ahead of
// Input to at most MaxContextLength characters.
type AugmentRequestRequest struct {
	Input           string
	Embedding       []float32
	MaxContextLength int
}

func (r AugmentRequestRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.Input)
	for _, f := range r.Embedding {
		w.PutRepeatedVarint(2, uint64(float32Bits(f)))
	}
	w.PutVarint(3, uint64(r.MaxContextLength))
	return w.Bytes(), nil
}

func (r *AugmentRequestRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Input = s
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Embedding = append(r.Embedding, float32FromBits(uint32(u)))
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.MaxContextLength = int(u)
		}
		return nil
	})
}

type AugmentRequestResponse struct {
	AugmentedInput string
	SourcesUsed    []string
}

func (r AugmentRequestResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.AugmentedInput)
	for _, s := range r.SourcesUsed {
		w.PutString(2, s)
	}
	return w.Bytes(), nil
}

func (r *AugmentRequestResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.AugmentedInput = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.SourcesUsed = append(r.SourcesUsed, s)
		}
		return nil
	})
}

type GetDocumentRequest struct {
	DocumentID string
}

func (r GetDocumentRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.DocumentID)
	return w.Bytes(), nil
}

func (r *GetDocumentRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.DocumentID = s
		}
		return nil
	})
}

type GetDocumentResponse struct {
	DocumentID string
	Content    string
	Found      bool
}

func (r GetDocumentResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.DocumentID)
	w.PutString(2, r.Content)
	if r.Found {
		w.PutVarint(3, 1)
	}
	return w.Bytes(), nil
}

func (r *GetDocumentResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.DocumentID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Content = s
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Found = u != 0
		}
		return nil
	})
}

type DeleteDocumentRequest struct {
	DocumentID string
}

func (r DeleteDocumentRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.DocumentID)
	return w.Bytes(), nil
}

func (r *DeleteDocumentRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.DocumentID = s
		}
		return nil
	})
}

type DeleteDocumentResponse struct {
	Deleted bool
}

func (r DeleteDocumentResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Deleted {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *DeleteDocumentResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Deleted = u != 0
		}
		return nil
	})
}

type ListDocumentsRequest struct {
	MetadataFilter map[string]string
}

func (r ListDocumentsRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for k, v := range r.MetadataFilter {
		pair := metadataPair{key: k, value: v}
		b, err := pair.Marshal()
		if err != nil {
			return nil, err
		}
		w.PutBytes(1, b)
	}
	return w.Bytes(), nil
}

func (r *ListDocumentsRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var pair metadataPair
			if err := pair.Unmarshal(b); err != nil {
				return err
			}
			if r.MetadataFilter == nil {
				r.MetadataFilter = make(map[string]string)
			}
			r.MetadataFilter[pair.key] = pair.value
		}
		return nil
	})
}

type ListDocumentsResponse struct {
	DocumentIDs []string
}

func (r ListDocumentsResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, id := range r.DocumentIDs {
		w.PutString(1, id)
	}
	return w.Bytes(), nil
}

func (r *ListDocumentsResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.DocumentIDs = append(r.DocumentIDs, s)
		}
		return nil
	})
}

// RAGManagerClient is the consumer-facing RAG Manager surface.
type RAGManagerClient interface {
	IndexDocument(ctx context.Context, req IndexDocumentRequest) (IndexDocumentResponse, error)
	Retrieve(ctx context.Context, req RetrieveRequest) (RetrieveResponse, error)
	AugmentRequest(ctx context.Context, req AugmentRequestRequest) (AugmentRequestResponse, error)
	GetDocument(ctx context.Context, req GetDocumentRequest) (GetDocumentResponse, error)
	DeleteDocument(ctx context.Context, req DeleteDocumentRequest) (DeleteDocumentResponse, error)
	ListDocuments(ctx context.Context, req ListDocumentsRequest) (ListDocumentsResponse, error)
}

// RAGManagerServer is the implementer-facing RAG Manager surface.
type RAGManagerServer interface {
	IndexDocument(ctx context.Context, req IndexDocumentRequest) (IndexDocumentResponse, error)
	Retrieve(ctx context.Context, req RetrieveRequest) (RetrieveResponse, error)
	AugmentRequest(ctx context.Context, req AugmentRequestRequest) (AugmentRequestResponse, error)
	GetDocument(ctx context.Context, req GetDocumentRequest) (GetDocumentResponse, error)
	DeleteDocument(ctx context.Context, req DeleteDocumentRequest) (DeleteDocumentResponse, error)
	ListDocuments(ctx context.Context, req ListDocumentsRequest) (ListDocumentsResponse, error)
}
