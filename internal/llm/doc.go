// Package llm talks to generative AI providers for the two assistant
// features: written financial advice and reading bills from photos.
// Gemini and Anthropic are supported; both sit behind Client so the
// Advisor and Extractor never see provider details.
package llm
