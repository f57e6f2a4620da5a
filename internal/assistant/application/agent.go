package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/tools"

	"jnmoveis/internal/assistant/domain"
)

// DefaultMaxSteps tours de modèle maximum par question
const DefaultMaxSteps = 6

// SystemPrompt consignes de l'agent analyste
const SystemPrompt = `Você é um analista de dados sênior especializado em inteligência comercial da JN Moveis,
fabricante familiar de móveis para salões de beleza e barbearias (cadeiras, lavatórios, carrinhos e armários).

Regras:
- SEMPRE use as ferramentas para obter dados reais; nunca invente números.
- Se uma ferramenta não retornar dados, informe que não há dados.
- Perguntas diretas (preço, quantidade): responda de forma curta, sem insights não solicitados.
- Análises complexas: organize em DADOS, INSIGHTS e RECOMENDAÇÕES.
- Use o histórico da conversa para resolver referências como "esse ano" ou "esse produto".
- Valores monetários em reais no formato R$ 1.234,56.`

// ChatCompleter client de chat compatible OpenAI (*openai.Client en production)
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Agent boucle d'appels de fonctions: le modèle choisit les outils, l'agent les exécute
// et renvoie leurs sorties jusqu'à obtenir une réponse textuelle.
type Agent struct {
	client   ChatCompleter
	model    string
	maxSteps int
	tools    *Toolset
	dispatch map[string]tools.Tool
	sessions *SessionStore
	logger   *slog.Logger
}

// NewAgent crée l'agent; maxSteps <= 0 prend DefaultMaxSteps
func NewAgent(client ChatCompleter, model string, maxSteps int, toolset *Toolset, sessions *SessionStore, logger *slog.Logger) *Agent {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		client:   client,
		model:    model,
		maxSteps: maxSteps,
		tools:    toolset,
		dispatch: dispatchTable(toolset.Tools()),
		sessions: sessions,
		logger:   logger,
	}
}

// Ask répond à question dans la session sessionID (nouvelle session si vide).
// Les échecs d'outil sont transmis au modèle sous forme de message d'erreur.
func (a *Agent) Ask(ctx context.Context, sessionID, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, domain.ErrEmptyQuestion
	}
	session, err := a.sessions.Open(sessionID)
	if err != nil {
		return domain.Answer{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	logger := a.logger.With("session", session.ID.String())
	history := session.History()
	history = append(history, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: question})

	answer := domain.Answer{SessionID: session.ID.String()}
	definitions := a.tools.Definitions()
	for answer.Steps < a.maxSteps {
		answer.Steps++

		messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt})
		messages = append(messages, history...)

		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
			Tools:    definitions,
		})
		if err != nil {
			logger.Error("chat completion failed", "step", answer.Steps, "error", err)
			return domain.Answer{}, fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return domain.Answer{}, errors.New("chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		history = append(history, msg)
		if len(msg.ToolCalls) == 0 {
			answer.Text = msg.Content
			a.sessions.Save(session, history)
			logger.Info("question answered", "steps", answer.Steps, "tool_calls", len(answer.ToolCalls))
			return answer, nil
		}

		for _, call := range msg.ToolCalls {
			output := a.invoke(ctx, call, logger)
			answer.ToolCalls = append(answer.ToolCalls, domain.ToolCall{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
				Output:    output,
			})
			history = append(history, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			})
		}
	}

	logger.Warn("step limit reached", "steps", answer.Steps)
	answer.Text = domain.StepLimitReached
	history = append(history, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer.Text})
	a.sessions.Save(session, history)
	return answer, nil
}

// dispatchTable index des outils par nom; un nom en double garde le premier
func dispatchTable(list []tools.Tool) map[string]tools.Tool {
	out := make(map[string]tools.Tool, len(list))
	for _, t := range list {
		if _, dup := out[t.Name()]; !dup {
			out[t.Name()] = t
		}
	}
	return out
}

func (a *Agent) invoke(ctx context.Context, call openai.ToolCall, logger *slog.Logger) string {
	tool, ok := a.dispatch[call.Function.Name]
	if !ok {
		logger.Warn("unknown tool requested", "tool", call.Function.Name)
		return domain.UnknownTool(call.Function.Name)
	}
	output, err := tool.Call(ctx, call.Function.Arguments)
	if err != nil {
		return domain.ToolFailure(err)
	}
	return output
}
