package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound session de conversation inconnue ou expirée
var ErrSessionNotFound = errors.New("chat session not found")

// ErrEmptyQuestion question vide
var ErrEmptyQuestion = errors.New("empty question")

// Réponses explicatives retournées au modèle à la place d'une erreur.

// UnknownSelector sélecteur "tipo" non reconnu
func UnknownSelector(tipo string, options []string) string {
	return fmt.Sprintf("Tipo '%s' não reconhecido. Use: %s", tipo, strings.Join(options, ", "))
}

// MissingParameter paramètre obligatoire absent
func MissingParameter(name, hint string) string {
	msg := fmt.Sprintf("Parâmetro obrigatório ausente: '%s'.", name)
	if hint != "" {
		msg += " " + hint
	}
	return msg
}

// InvalidParameter paramètre hors domaine
func InvalidParameter(err error) string {
	return fmt.Sprintf("Parâmetro inválido: %v", err)
}

// InvalidArguments arguments JSON illisibles
func InvalidArguments(tool string, err error) string {
	return fmt.Sprintf("Argumentos inválidos para %s: %v. Envie um objeto JSON com os parâmetros documentados.", tool, err)
}

// UnknownTool outil demandé par le modèle et absent du registre
func UnknownTool(name string) string {
	return fmt.Sprintf("Ferramenta '%s' não existe.", name)
}

// ToolFailure échec d'exécution transmis au modèle
func ToolFailure(err error) string {
	return fmt.Sprintf("Erro: Não foi possível carregar os dados (%v).", err)
}

// ProductNotFound aucun produit pour la cotation
func ProductNotFound(search string) string {
	return fmt.Sprintf("Produto não encontrado: %s\n\nDica: Use analisar_produtos(tipo='top_vendidos') para ver produtos disponíveis.", search)
}

// NoProductsFound recherche sans résultat
func NoProductsFound(criterio string) string {
	return fmt.Sprintf("Nenhum produto encontrado para: '%s'\n\nTente termos mais genéricos ou use analisar_produtos(tipo='top_vendidos').", criterio)
}

// StepLimitReached l'agent n'a pas conclu dans le nombre de tours autorisé
const StepLimitReached = "Não consegui concluir a análise dentro do limite de etapas. Tente reformular a pergunta."
