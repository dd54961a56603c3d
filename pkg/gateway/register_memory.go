package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

func registerMemory(d *Dispatcher, svc contracts.MemoryServer) {
	if svc == nil {
		return
	}

	d.unary[contracts.MethodCreateConversation] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.CreateConversationRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.CreateConversation(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodGetConversation] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.GetConversationRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.GetConversation(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodDeleteConversation] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.DeleteConversationRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.DeleteConversation(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodListConversations] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.ListConversationsRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.ListConversations(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodAppendMessage] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.AppendMessageRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.AppendMessage(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodGetHistory] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.GetHistoryRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.GetHistory(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodSearchMessages] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.SearchMessagesRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.SearchMessages(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}
}
