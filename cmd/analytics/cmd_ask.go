package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	assistantapp "jnmoveis/internal/assistant/application"
)

var errAssistantDisabled = errors.New("assistente desativado: defina OPENAI_API_KEY")

func newAskCmd(c *cli) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "ask [pergunta]",
		Short: "Faz uma pergunta ao assistente; sem argumento, abre uma conversa",
		Example: `  analytics ask "Quais foram os produtos mais vendidos?"
  analytics ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			if app.Agent == nil {
				return errAssistantDisabled
			}
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				_, err := ask(cmd, app.Agent, "", strings.Join(args, " "), verbose)
				return err
			}

			fmt.Fprintln(out, "Digite sua pergunta (linha vazia para sair).")
			session := ""
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					break
				}
				session, err = ask(cmd, app.Agent, session, question, verbose)
				if err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "mostra as ferramentas chamadas")
	return cmd
}

// ask pose une question et retourne la session utilisée
func ask(cmd *cobra.Command, agent *assistantapp.Agent, session, question string, verbose bool) (string, error) {
	answer, err := agent.Ask(cmd.Context(), session, question)
	if err != nil {
		return session, err
	}
	out := cmd.OutOrStdout()
	if verbose {
		for _, call := range answer.ToolCalls {
			fmt.Fprintf(out, "🔧 %s %s\n", call.Name, call.Arguments)
		}
	}
	fmt.Fprintln(out, answer.Text)
	return answer.SessionID, nil
}
