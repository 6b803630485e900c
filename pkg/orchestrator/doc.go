// Package orchestrator wires the tokenizer → classifier → inferencer →
// overrides → persona aggregator → schema builder pipeline behind a single
// Analyze call, caching results per template until the placeholder set or the
// template's overrides change.
package orchestrator
