// Package openai implements the ai interfaces using the OpenAI API
// (or any OpenAI-compatible endpoint) via langchaingo.
package openai
