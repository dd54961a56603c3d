package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
	"github.com/lspecian/intellirouter/pkg/transport"
)

// FabricClient is a single concrete type satisfying every per-service
// *Client interface in pkg/contracts at once: the 34 operations across the
// six services never collide on a method name, so one type can stand in
// for contracts.ChainEngineClient, contracts.RouterClient, and so on,
// picking the view the caller asks for rather than forcing six wrapper
// types on top of one connection.
type FabricClient struct {
	cc   *callClient
	conn *transport.Client
}

// Close releases the underlying connection.
func (c *FabricClient) Close() error { return c.conn.Close() }

var (
	_ contracts.ChainEngineClient   = (*FabricClient)(nil)
	_ contracts.ModelRegistryClient = (*FabricClient)(nil)
	_ contracts.MemoryClient        = (*FabricClient)(nil)
	_ contracts.RAGManagerClient    = (*FabricClient)(nil)
	_ contracts.PersonaLayerClient  = (*FabricClient)(nil)
	_ contracts.RouterClient        = (*FabricClient)(nil)
)

// Chain Engine

func (c *FabricClient) ExecuteChain(ctx context.Context, req contracts.ExecuteChainRequest) (contracts.ExecuteChainResponse, error) {
	var resp contracts.ExecuteChainResponse
	err := c.cc.unary(ctx, contracts.MethodExecuteChain, &req, &resp)
	return resp, err
}

func (c *FabricClient) StreamChainExecution(ctx context.Context, req contracts.ExecuteChainRequest, onEvent func(contracts.ChainExecutionEvent) error) error {
	return c.cc.stream(ctx, contracts.MethodStreamChainExecution, &req, func(payload []byte) error {
		var ev contracts.ChainExecutionEvent
		if err := ev.Unmarshal(payload); err != nil {
			return decodeFailure(err)
		}
		return onEvent(ev)
	})
}

func (c *FabricClient) GetExecutionStatus(ctx context.Context, req contracts.GetExecutionStatusRequest) (contracts.GetExecutionStatusResponse, error) {
	var resp contracts.GetExecutionStatusResponse
	err := c.cc.unary(ctx, contracts.MethodGetExecutionStatus, &req, &resp)
	return resp, err
}

func (c *FabricClient) CancelExecution(ctx context.Context, req contracts.CancelExecutionRequest) (contracts.CancelExecutionResponse, error) {
	var resp contracts.CancelExecutionResponse
	err := c.cc.unary(ctx, contracts.MethodCancelExecution, &req, &resp)
	return resp, err
}

// Model Registry

func (c *FabricClient) RegisterModel(ctx context.Context, req contracts.RegisterModelRequest) (contracts.RegisterModelResponse, error) {
	var resp contracts.RegisterModelResponse
	err := c.cc.unary(ctx, contracts.MethodRegisterModel, &req, &resp)
	return resp, err
}

func (c *FabricClient) UpdateModel(ctx context.Context, req contracts.UpdateModelRequest) (contracts.UpdateModelResponse, error) {
	var resp contracts.UpdateModelResponse
	err := c.cc.unary(ctx, contracts.MethodUpdateModel, &req, &resp)
	return resp, err
}

func (c *FabricClient) RemoveModel(ctx context.Context, req contracts.RemoveModelRequest) (contracts.RemoveModelResponse, error) {
	var resp contracts.RemoveModelResponse
	err := c.cc.unary(ctx, contracts.MethodRemoveModel, &req, &resp)
	return resp, err
}

func (c *FabricClient) ListModels(ctx context.Context, req contracts.ListModelsRequest) (contracts.ListModelsResponse, error) {
	var resp contracts.ListModelsResponse
	err := c.cc.unary(ctx, contracts.MethodListModels, &req, &resp)
	return resp, err
}

func (c *FabricClient) FindModel(ctx context.Context, req contracts.FindModelRequest) (contracts.FindModelResponse, error) {
	var resp contracts.FindModelResponse
	err := c.cc.unary(ctx, contracts.MethodFindModel, &req, &resp)
	return resp, err
}

func (c *FabricClient) UpdateModelStatus(ctx context.Context, req contracts.UpdateModelStatusRequest) (contracts.UpdateModelStatusResponse, error) {
	var resp contracts.UpdateModelStatusResponse
	err := c.cc.unary(ctx, contracts.MethodUpdateModelStatus, &req, &resp)
	return resp, err
}

func (c *FabricClient) HealthCheck(ctx context.Context, req contracts.HealthCheckRequest) (contracts.HealthCheckResponse, error) {
	var resp contracts.HealthCheckResponse
	err := c.cc.unary(ctx, contracts.MethodHealthCheck, &req, &resp)
	return resp, err
}

// Memory

func (c *FabricClient) CreateConversation(ctx context.Context, req contracts.CreateConversationRequest) (contracts.CreateConversationResponse, error) {
	var resp contracts.CreateConversationResponse
	err := c.cc.unary(ctx, contracts.MethodCreateConversation, &req, &resp)
	return resp, err
}

func (c *FabricClient) GetConversation(ctx context.Context, req contracts.GetConversationRequest) (contracts.GetConversationResponse, error) {
	var resp contracts.GetConversationResponse
	err := c.cc.unary(ctx, contracts.MethodGetConversation, &req, &resp)
	return resp, err
}

func (c *FabricClient) DeleteConversation(ctx context.Context, req contracts.DeleteConversationRequest) (contracts.DeleteConversationResponse, error) {
	var resp contracts.DeleteConversationResponse
	err := c.cc.unary(ctx, contracts.MethodDeleteConversation, &req, &resp)
	return resp, err
}

func (c *FabricClient) ListConversations(ctx context.Context, req contracts.ListConversationsRequest) (contracts.ListConversationsResponse, error) {
	var resp contracts.ListConversationsResponse
	err := c.cc.unary(ctx, contracts.MethodListConversations, &req, &resp)
	return resp, err
}

func (c *FabricClient) AppendMessage(ctx context.Context, req contracts.AppendMessageRequest) (contracts.AppendMessageResponse, error) {
	var resp contracts.AppendMessageResponse
	err := c.cc.unary(ctx, contracts.MethodAppendMessage, &req, &resp)
	return resp, err
}

func (c *FabricClient) GetHistory(ctx context.Context, req contracts.GetHistoryRequest) (contracts.GetHistoryResponse, error) {
	var resp contracts.GetHistoryResponse
	err := c.cc.unary(ctx, contracts.MethodGetHistory, &req, &resp)
	return resp, err
}

func (c *FabricClient) SearchMessages(ctx context.Context, req contracts.SearchMessagesRequest) (contracts.SearchMessagesResponse, error) {
	var resp contracts.SearchMessagesResponse
	err := c.cc.unary(ctx, contracts.MethodSearchMessages, &req, &resp)
	return resp, err
}

// RAG Manager

func (c *FabricClient) IndexDocument(ctx context.Context, req contracts.IndexDocumentRequest) (contracts.IndexDocumentResponse, error) {
	var resp contracts.IndexDocumentResponse
	err := c.cc.unary(ctx, contracts.MethodIndexDocument, &req, &resp)
	return resp, err
}

func (c *FabricClient) Retrieve(ctx context.Context, req contracts.RetrieveRequest) (contracts.RetrieveResponse, error) {
	var resp contracts.RetrieveResponse
	err := c.cc.unary(ctx, contracts.MethodRetrieve, &req, &resp)
	return resp, err
}

func (c *FabricClient) AugmentRequest(ctx context.Context, req contracts.AugmentRequestRequest) (contracts.AugmentRequestResponse, error) {
	var resp contracts.AugmentRequestResponse
	err := c.cc.unary(ctx, contracts.MethodAugmentRequest, &req, &resp)
	return resp, err
}

func (c *FabricClient) GetDocument(ctx context.Context, req contracts.GetDocumentRequest) (contracts.GetDocumentResponse, error) {
	var resp contracts.GetDocumentResponse
	err := c.cc.unary(ctx, contracts.MethodGetDocument, &req, &resp)
	return resp, err
}

func (c *FabricClient) DeleteDocument(ctx context.Context, req contracts.DeleteDocumentRequest) (contracts.DeleteDocumentResponse, error) {
	var resp contracts.DeleteDocumentResponse
	err := c.cc.unary(ctx, contracts.MethodDeleteDocument, &req, &resp)
	return resp, err
}

func (c *FabricClient) ListDocuments(ctx context.Context, req contracts.ListDocumentsRequest) (contracts.ListDocumentsResponse, error) {
	var resp contracts.ListDocumentsResponse
	err := c.cc.unary(ctx, contracts.MethodListDocuments, &req, &resp)
	return resp, err
}

// Persona Layer

func (c *FabricClient) CreatePersona(ctx context.Context, req contracts.CreatePersonaRequest) (contracts.CreatePersonaResponse, error) {
	var resp contracts.CreatePersonaResponse
	err := c.cc.unary(ctx, contracts.MethodCreatePersona, &req, &resp)
	return resp, err
}

func (c *FabricClient) GetPersona(ctx context.Context, req contracts.GetPersonaRequest) (contracts.GetPersonaResponse, error) {
	var resp contracts.GetPersonaResponse
	err := c.cc.unary(ctx, contracts.MethodGetPersona, &req, &resp)
	return resp, err
}

func (c *FabricClient) UpdatePersona(ctx context.Context, req contracts.UpdatePersonaRequest) (contracts.UpdatePersonaResponse, error) {
	var resp contracts.UpdatePersonaResponse
	err := c.cc.unary(ctx, contracts.MethodUpdatePersona, &req, &resp)
	return resp, err
}

func (c *FabricClient) DeletePersona(ctx context.Context, req contracts.DeletePersonaRequest) (contracts.DeletePersonaResponse, error) {
	var resp contracts.DeletePersonaResponse
	err := c.cc.unary(ctx, contracts.MethodDeletePersona, &req, &resp)
	return resp, err
}

func (c *FabricClient) ListPersonas(ctx context.Context, req contracts.ListPersonasRequest) (contracts.ListPersonasResponse, error) {
	var resp contracts.ListPersonasResponse
	err := c.cc.unary(ctx, contracts.MethodListPersonas, &req, &resp)
	return resp, err
}

func (c *FabricClient) ApplyPersona(ctx context.Context, req contracts.ApplyPersonaRequest) (contracts.ApplyPersonaResponse, error) {
	var resp contracts.ApplyPersonaResponse
	err := c.cc.unary(ctx, contracts.MethodApplyPersona, &req, &resp)
	return resp, err
}

// Router

func (c *FabricClient) RouteRequest(ctx context.Context, req contracts.RouteRequestRequest) (contracts.RouteRequestResponse, error) {
	var resp contracts.RouteRequestResponse
	err := c.cc.unary(ctx, contracts.MethodRouteRequest, &req, &resp)
	return resp, err
}

func (c *FabricClient) StreamRoute(ctx context.Context, req contracts.RouteRequestRequest, onChunk func(contracts.RouteStreamChunk) error) error {
	return c.cc.stream(ctx, contracts.MethodStreamRoute, &req, func(payload []byte) error {
		var chunk contracts.RouteStreamChunk
		if err := chunk.Unmarshal(payload); err != nil {
			return decodeFailure(err)
		}
		return onChunk(chunk)
	})
}

func (c *FabricClient) ListStrategies(ctx context.Context, req contracts.ListStrategiesRequest) (contracts.ListStrategiesResponse, error) {
	var resp contracts.ListStrategiesResponse
	err := c.cc.unary(ctx, contracts.MethodListStrategies, &req, &resp)
	return resp, err
}

func (c *FabricClient) UpdateStrategy(ctx context.Context, req contracts.UpdateStrategyRequest) (contracts.UpdateStrategyResponse, error) {
	var resp contracts.UpdateStrategyResponse
	err := c.cc.unary(ctx, contracts.MethodUpdateStrategy, &req, &resp)
	return resp, err
}
