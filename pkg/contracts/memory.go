package contracts

import (
	"context"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/wire"
)

const (
	MethodCreateConversation = "Memory.CreateConversation"
	MethodGetConversation    = "Memory.GetConversation"
	MethodDeleteConversation = "Memory.DeleteConversation"
	MethodListConversations  = "Memory.ListConversations"
	MethodAppendMessage      = "Memory.AppendMessage"
	MethodGetHistory         = "Memory.GetHistory"
	MethodSearchMessages     = "Memory.SearchMessages"
)

// MemoryRoles declares the roles required by every Memory operation.
var MemoryRoles = Roles{
	MethodCreateConversation: {"manage_memory"},
	MethodGetConversation:    {"view_memory"},
	MethodDeleteConversation: {"manage_memory"},
	MethodListConversations:  {"view_memory"},
	MethodAppendMessage:      {"manage_memory"},
	MethodGetHistory:         {"view_memory"},
	MethodSearchMessages:     {"view_memory"},
}

type CreateConversationRequest struct {
	TenantID string
	// RequestID makes this a client-id-keyed write: replaying the same
	// RequestID returns the same ConversationID rather than a duplicate.
	RequestID string
}

func (r CreateConversationRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.TenantID)
	w.PutString(2, r.RequestID)
	return w.Bytes(), nil
}

func (r *CreateConversationRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.TenantID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.RequestID = s
		}
		return nil
	})
}

type CreateConversationResponse struct {
	ConversationID string
}

func (r CreateConversationResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ConversationID)
	return w.Bytes(), nil
}

func (r *CreateConversationResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationID = s
		}
		return nil
	})
}

type GetConversationRequest struct {
	ConversationID string
}

func (r GetConversationRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ConversationID)
	return w.Bytes(), nil
}

func (r *GetConversationRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationID = s
		}
		return nil
	})
}

type GetConversationResponse struct {
	ConversationID string
	CreatedAt      time.Time
	MessageCount   int
}

func (r GetConversationResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ConversationID)
	w.PutInt64(2, r.CreatedAt.UnixNano())
	w.PutVarint(3, uint64(r.MessageCount))
	return w.Bytes(), nil
}

func (r *GetConversationResponse) Unmarshal(data []byte) error {
	var nano int64
	err := wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationID = s
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			nano = int64(u)
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.MessageCount = int(u)
		}
		return nil
	})
	if nano != 0 {
		r.CreatedAt = time.Unix(0, nano).UTC()
	}
	return err
}

type DeleteConversationRequest struct {
	ConversationID string
}

func (r DeleteConversationRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ConversationID)
	return w.Bytes(), nil
}

func (r *DeleteConversationRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationID = s
		}
		return nil
	})
}

type DeleteConversationResponse struct {
	Deleted bool
}

func (r DeleteConversationResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Deleted {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *DeleteConversationResponse) Unmarshal(data []byte) error {
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

type ListConversationsRequest struct {
	TenantID string
}

func (r ListConversationsRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.TenantID)
	return w.Bytes(), nil
}

func (r *ListConversationsRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.TenantID = s
		}
		return nil
	})
}

type ListConversationsResponse struct {
	ConversationIDs []string
}

func (r ListConversationsResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, id := range r.ConversationIDs {
		w.PutString(1, id)
	}
	return w.Bytes(), nil
}

func (r *ListConversationsResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationIDs = append(r.ConversationIDs, s)
		}
		return nil
	})
}

type AppendMessageRequest struct {
	ConversationID string
	Message        wire.ChatMessage
	RequestID      string
}

func (r AppendMessageRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ConversationID)
	if err := w.PutMessage(2, &r.Message); err != nil {
		return nil, err
	}
	w.PutString(3, r.RequestID)
	return w.Bytes(), nil
}

func (r *AppendMessageRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationID = s
		case 2:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			return r.Message.Unmarshal(b)
		case 3:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.RequestID = s
		}
		return nil
	})
}

type AppendMessageResponse struct {
	Appended bool
}

func (r AppendMessageResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Appended {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *AppendMessageResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Appended = u != 0
		}
		return nil
	})
}

// GetHistoryRequest windows the returned history by whichever budget is
// non-zero; both may be set, in which case the tighter bound applies.
type GetHistoryRequest struct {
	ConversationID string
	MaxTokens      int
	MaxMessages    int
}

func (r GetHistoryRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ConversationID)
	w.PutVarint(2, uint64(r.MaxTokens))
	w.PutVarint(3, uint64(r.MaxMessages))
	return w.Bytes(), nil
}

func (r *GetHistoryRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationID = s
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.MaxTokens = int(u)
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.MaxMessages = int(u)
		}
		return nil
	})
}

type GetHistoryResponse struct {
	Messages  []wire.ChatMessage
	Truncated bool
}

func (r GetHistoryResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, m := range r.Messages {
		if err := w.PutMessage(1, &m); err != nil {
			return nil, err
		}
	}
	if r.Truncated {
		w.PutVarint(2, 1)
	}
	return w.Bytes(), nil
}

func (r *GetHistoryResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var m wire.ChatMessage
			if err := m.Unmarshal(b); err != nil {
				return err
			}
			r.Messages = append(r.Messages, m)
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Truncated = u != 0
		}
		return nil
	})
}

type SearchMessagesRequest struct {
	ConversationID string
	Query          string
	Limit          int
}

func (r SearchMessagesRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ConversationID)
	w.PutString(2, r.Query)
	w.PutVarint(3, uint64(r.Limit))
	return w.Bytes(), nil
}

func (r *SearchMessagesRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ConversationID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Query = s
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Limit = int(u)
		}
		return nil
	})
}

type SearchMessagesResponse struct {
	Messages []wire.ChatMessage
}

func (r SearchMessagesResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, m := range r.Messages {
		if err := w.PutMessage(1, &m); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (r *SearchMessagesResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var m wire.ChatMessage
			if err := m.Unmarshal(b); err != nil {
				return err
			}
			r.Messages = append(r.Messages, m)
		}
		return nil
	})
}

// MemoryClient is the consumer-facing Memory surface.
type MemoryClient interface {
	CreateConversation(ctx context.Context, req CreateConversationRequest) (CreateConversationResponse, error)
	GetConversation(ctx context.Context, req GetConversationRequest) (GetConversationResponse, error)
	DeleteConversation(ctx context.Context, req DeleteConversationRequest) (DeleteConversationResponse, error)
	ListConversations(ctx context.Context, req ListConversationsRequest) (ListConversationsResponse, error)
	AppendMessage(ctx context.Context, req AppendMessageRequest) (AppendMessageResponse, error)
	GetHistory(ctx context.Context, req GetHistoryRequest) (GetHistoryResponse, error)
	SearchMessages(ctx context.Context, req SearchMessagesRequest) (SearchMessagesResponse, error)
}

// MemoryServer is the implementer-facing Memory surface.
type MemoryServer interface {
	CreateConversation(ctx context.Context, req CreateConversationRequest) (CreateConversationResponse, error)
	GetConversation(ctx context.Context, req GetConversationRequest) (GetConversationResponse, error)
	DeleteConversation(ctx context.Context, req DeleteConversationRequest) (DeleteConversationResponse, error)
	ListConversations(ctx context.Context, req ListConversationsRequest) (ListConversationsResponse, error)
	AppendMessage(ctx context.Context, req AppendMessageRequest) (AppendMessageResponse, error)
	GetHistory(ctx context.Context, req GetHistoryRequest) (GetHistoryResponse, error)
	SearchMessages(ctx context.Context, req SearchMessagesRequest) (SearchMessagesResponse, error)
}
