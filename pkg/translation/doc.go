// Package translation corrupts sentences by round-trip translation through a
// pivot language (English to Danish and back by default) using a chat
// completion model. *BackTranslator satisfies perturb.Translator.
package translation
