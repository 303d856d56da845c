// Package advisor implements the interactive AI assistant. It runs a chat
// session with a Gemini model briefed on the ledger's current state, so the
// user can ask free-form questions about their finances.
package advisor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const systemPrompt = `You are a personal finance advisor inside a terminal
expense tracker. You are given a briefing of the user's current ledger:
accounts and balances, this month's income and expenses, and budgets.
Answer the user's questions about their finances based on that briefing.
Be concise and concrete; amounts are in the user's display currency.
If a question needs data outside the briefing, say so instead of guessing.`

// Advisor is the chat session with the finance model.
type Advisor struct {
	w    io.Writer
	r    *bufio.Reader
	chat *genai.Chat
}

// New creates an Advisor writing its output to 'w' and reading user input
// from 'r'.
func New(w io.Writer, r io.Reader) *Advisor {
	return &Advisor{w: w, r: bufio.NewReader(r)}
}

// Start opens the chat session and hands the model the ledger briefing.
func (a *Advisor) Start(ctx context.Context, client *genai.Client, briefing string) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}
	history := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: "Ledger briefing:\n" + briefing}}},
		{Role: genai.RoleModel, Parts: []*genai.Part{{Text: "Understood. Ask me anything about these finances."}}},
	}
	chat, err := client.Chats.Create(ctx, model, config, history)
	if err != nil {
		return fmt.Errorf("cannot start advisor chat: %w", err)
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the model's text answer.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from advisor")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "advisor> "

// Run starts the interactive REPL session. Initial prompts, if any, are
// answered before reading from the user.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, briefing string, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client, briefing); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to the efx financial advisor. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
