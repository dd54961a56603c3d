package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

func registerRAGManager(d *Dispatcher, svc contracts.RAGManagerServer) {
	if svc == nil {
		return
	}

	d.unary[contracts.MethodIndexDocument] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.IndexDocumentRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.IndexDocument(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodRetrieve] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.RetrieveRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.Retrieve(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodAugmentRequest] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.AugmentRequestRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.AugmentRequest(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodGetDocument] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.GetDocumentRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.GetDocument(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodDeleteDocument] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.DeleteDocumentRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.DeleteDocument(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodListDocuments] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.ListDocumentsRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.ListDocuments(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}
}
