package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/tools"

	"jnmoveis/internal/assistant/domain"
	"jnmoveis/internal/logging"
)

// scriptedCompleter rejoue des réponses dans l'ordre; la dernière est répétée
type scriptedCompleter struct {
	mu        sync.Mutex
	responses []openai.ChatCompletionMessage
	requests  []openai.ChatCompletionRequest
	err       error
}

func (c *scriptedCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	i := min(len(c.requests)-1, len(c.responses)-1)
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: c.responses[i]}},
	}, nil
}

func toolCall(id, name, args string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{{
			ID:       id,
			Type:     openai.ToolTypeFunction,
			Function: openai.FunctionCall{Name: name, Arguments: args},
		}},
	}
}

func reply(text string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text}
}

func newAgent(t *testing.T, client ChatCompleter, maxSteps int) *Agent {
	t.Helper()
	sessions := NewSessionStore(0, 0)
	t.Cleanup(sessions.Close)
	return NewAgent(client, "gpt-4o-mini", maxSteps, newToolset(t, nil), sessions, logging.Discard())
}

func TestAgent_AnswersWithTool(t *testing.T) {
	client := &scriptedCompleter{responses: []openai.ChatCompletionMessage{
		toolCall("call_1", "analisar_vendas", `{"tipo":"total","ano":2022}`),
		reply("Faturamento de 2022: R$ 2.045,00"),
	}}
	agent := newAgent(t, client, 0)

	answer, err := agent.Ask(context.Background(), "", "Qual o faturamento de 2022?")

	require.NoError(t, err)
	assert.NotEmpty(t, answer.SessionID)
	assert.Equal(t, "Faturamento de 2022: R$ 2.045,00", answer.Text)
	assert.Equal(t, 2, answer.Steps)
	require.Len(t, answer.ToolCalls, 1)
	assert.Equal(t, "analisar_vendas", answer.ToolCalls[0].Name)
	assert.Contains(t, answer.ToolCalls[0].Output, "R$ 2.045,00")

	require.Len(t, client.requests, 2)
	first := client.requests[0]
	assert.Equal(t, "gpt-4o-mini", first.Model)
	assert.Len(t, first.Tools, 7)
	assert.Equal(t, openai.ChatMessageRoleSystem, first.Messages[0].Role)

	second := client.requests[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, openai.ChatMessageRoleTool, last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
	assert.Contains(t, last.Content, "R$ 2.045,00")
}

func TestAgent_KeepsSessionHistory(t *testing.T) {
	client := &scriptedCompleter{responses: []openai.ChatCompletionMessage{
		toolCall("call_1", "analisar_vendas", `{"tipo":"total","ano":2022}`),
		reply("R$ 2.045,00"),
		reply("Março"),
	}}
	agent := newAgent(t, client, 0)

	first, err := agent.Ask(context.Background(), "", "Qual o faturamento de 2022?")
	require.NoError(t, err)
	second, err := agent.Ask(context.Background(), first.SessionID, "E qual mês vendeu mais esse ano?")
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, "Março", second.Text)

	// system + user, tool call, tool output, reply + nouvelle question
	msgs := client.requests[2].Messages
	require.Len(t, msgs, 6)
	assert.Equal(t, "Qual o faturamento de 2022?", msgs[1].Content)
	assert.Equal(t, "E qual mês vendeu mais esse ano?", msgs[5].Content)
}

func TestAgent_UnknownTool(t *testing.T) {
	client := &scriptedCompleter{responses: []openai.ChatCompletionMessage{
		toolCall("call_1", "apagar_tudo", `{}`),
		reply("Não posso fazer isso."),
	}}
	agent := newAgent(t, client, 0)

	answer, err := agent.Ask(context.Background(), "", "Apague os dados")

	require.NoError(t, err)
	assert.Equal(t, domain.UnknownTool("apagar_tudo"), answer.ToolCalls[0].Output)
}

func TestAgent_ToolFailureIsReportedToModel(t *testing.T) {
	boom := errors.New("connection refused")
	client := &scriptedCompleter{responses: []openai.ChatCompletionMessage{
		toolCall("call_1", "analisar_clientes", `{"tipo":"sexo"}`),
		reply("Não há dados no momento."),
	}}
	sessions := NewSessionStore(0, 0)
	t.Cleanup(sessions.Close)
	agent := NewAgent(client, "m", 3, NewToolset(failingAnalytics{err: boom}, logging.Discard(), nil), sessions, logging.Discard())

	answer, err := agent.Ask(context.Background(), "", "Perfil dos clientes?")

	require.NoError(t, err)
	assert.Contains(t, answer.ToolCalls[0].Output, "Não foi possível carregar os dados")
	assert.Equal(t, "Não há dados no momento.", answer.Text)
}

func TestAgent_StepLimit(t *testing.T) {
	client := &scriptedCompleter{responses: []openai.ChatCompletionMessage{
		toolCall("call_1", "analisar_vendas", `{"tipo":"ano"}`),
	}}
	agent := newAgent(t, client, 3)

	answer, err := agent.Ask(context.Background(), "", "Vendas por ano")

	require.NoError(t, err)
	assert.Equal(t, 3, answer.Steps)
	assert.Equal(t, domain.StepLimitReached, answer.Text)
	assert.Len(t, client.requests, 3)
}

func TestAgent_Errors(t *testing.T) {
	boom := errors.New("rate limited")
	agent := newAgent(t, &scriptedCompleter{err: boom}, 0)

	_, err := agent.Ask(context.Background(), "", "oi")
	assert.ErrorIs(t, err, boom)

	_, err = agent.Ask(context.Background(), "", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuestion)

	_, err = agent.Ask(context.Background(), "not-a-uuid", "oi")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

type noChoices struct{}

func (noChoices) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}

func TestAgent_NoChoices(t *testing.T) {
	agent := newAgent(t, noChoices{}, 0)

	_, err := agent.Ask(context.Background(), "", "oi")

	assert.Error(t, err)
}

// stubTool outil langchaingo minimal qui mémorise son entrée
type stubTool struct {
	name   string
	output string
	input  *string
}

func (s stubTool) Name() string        { return s.name }
func (s stubTool) Description() string { return "stub" }

func (s stubTool) Call(_ context.Context, input string) (string, error) {
	if s.input != nil {
		*s.input = input
	}
	return s.output, nil
}

func TestAgent_DispatchesThroughToolInterface(t *testing.T) {
	client := &scriptedCompleter{responses: []openai.ChatCompletionMessage{
		toolCall("call_1", "analisar_vendas", `{"tipo":"ano"}`),
		reply("ok"),
	}}
	agent := newAgent(t, client, 0)
	var received string
	agent.dispatch["analisar_vendas"] = stubTool{name: "analisar_vendas", output: "vendas fixas", input: &received}

	answer, err := agent.Ask(context.Background(), "", "Vendas por ano?")

	require.NoError(t, err)
	require.Len(t, answer.ToolCalls, 1)
	assert.Equal(t, "vendas fixas", answer.ToolCalls[0].Output)
	assert.Equal(t, `{"tipo":"ano"}`, received)
}

func TestDispatchTable_FirstNameWins(t *testing.T) {
	table := dispatchTable([]tools.Tool{
		stubTool{name: "buscar_produto", output: "primeiro"},
		stubTool{name: "buscar_produto", output: "segundo"},
		stubTool{name: "analisar_vendas", output: "vendas"},
	})

	require.Len(t, table, 2)
	out, err := table["buscar_produto"].Call(context.Background(), "{}")
	require.NoError(t, err)
	assert.Equal(t, "primeiro", out)
}

func TestNewAgent_IndexesToolset(t *testing.T) {
	agent := newAgent(t, &scriptedCompleter{responses: []openai.ChatCompletionMessage{reply("ok")}}, 0)

	require.Len(t, agent.dispatch, 7)
	for name, tool := range agent.dispatch {
		assert.Equal(t, name, tool.Name())
	}
}
