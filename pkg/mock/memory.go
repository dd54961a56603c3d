package mock

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

// Memory is a deterministic contracts.MemoryClient/Server.
type Memory struct {
	Create  *Table[contracts.CreateConversationRequest, contracts.CreateConversationResponse]
	Get     *Table[contracts.GetConversationRequest, contracts.GetConversationResponse]
	Delete  *Table[contracts.DeleteConversationRequest, contracts.DeleteConversationResponse]
	List    *Table[contracts.ListConversationsRequest, contracts.ListConversationsResponse]
	Append  *Table[contracts.AppendMessageRequest, contracts.AppendMessageResponse]
	History *Table[contracts.GetHistoryRequest, contracts.GetHistoryResponse]
	Search  *Table[contracts.SearchMessagesRequest, contracts.SearchMessagesResponse]
}

func createConversationKey(r contracts.CreateConversationRequest) string {
	if r.RequestID != "" {
		return r.RequestID
	}
	return r.TenantID
}

func appendMessageKey(r contracts.AppendMessageRequest) string {
	if r.RequestID != "" {
		return r.RequestID
	}
	return r.ConversationID + "\x00" + r.Message.Content
}

func NewMemory() *Memory {
	return &Memory{
		Create: NewTable(createConversationKey, Outcome[contracts.CreateConversationResponse]{}),
		Get: NewTable(func(r contracts.GetConversationRequest) string { return r.ConversationID },
			Outcome[contracts.GetConversationResponse]{}),
		Delete: NewTable(func(r contracts.DeleteConversationRequest) string { return r.ConversationID },
			Outcome[contracts.DeleteConversationResponse]{}),
		List: NewTable(func(r contracts.ListConversationsRequest) string { return r.TenantID },
			Outcome[contracts.ListConversationsResponse]{}),
		Append: NewTable(appendMessageKey, Outcome[contracts.AppendMessageResponse]{}),
		History: NewTable(func(r contracts.GetHistoryRequest) string { return r.ConversationID },
			Outcome[contracts.GetHistoryResponse]{}),
		Search: NewTable(func(r contracts.SearchMessagesRequest) string { return r.ConversationID + "\x00" + r.Query },
			Outcome[contracts.SearchMessagesResponse]{}),
	}
}

func (m *Memory) CreateConversation(ctx context.Context, req contracts.CreateConversationRequest) (contracts.CreateConversationResponse, error) {
	o := m.Create.Lookup(req)
	return o.Response, o.Err
}

func (m *Memory) GetConversation(ctx context.Context, req contracts.GetConversationRequest) (contracts.GetConversationResponse, error) {
	o := m.Get.Lookup(req)
	return o.Response, o.Err
}

func (m *Memory) DeleteConversation(ctx context.Context, req contracts.DeleteConversationRequest) (contracts.DeleteConversationResponse, error) {
	o := m.Delete.Lookup(req)
	return o.Response, o.Err
}

func (m *Memory) ListConversations(ctx context.Context, req contracts.ListConversationsRequest) (contracts.ListConversationsResponse, error) {
	o := m.List.Lookup(req)
	return o.Response, o.Err
}

func (m *Memory) AppendMessage(ctx context.Context, req contracts.AppendMessageRequest) (contracts.AppendMessageResponse, error) {
	o := m.Append.Lookup(req)
	return o.Response, o.Err
}

func (m *Memory) GetHistory(ctx context.Context, req contracts.GetHistoryRequest) (contracts.GetHistoryResponse, error) {
	o := m.History.Lookup(req)
	return o.Response, o.Err
}

func (m *Memory) SearchMessages(ctx context.Context, req contracts.SearchMessagesRequest) (contracts.SearchMessagesResponse, error) {
	o := m.Search.Lookup(req)
	return o.Response, o.Err
}

var (
	_ contracts.MemoryClient = (*Memory)(nil)
	_ contracts.MemoryServer = (*Memory)(nil)
)
