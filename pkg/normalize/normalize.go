// Package normalize decides whether a raw directory entry name is in its
// canonical Unicode form and computes that form. It performs no I/O.
package normalize

import (
	"unicode/utf8"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/types"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Classifier maps a raw name to its canonical form
type Classifier interface {
	Classify(rawName string) (types.CanonicalForm, error)
}

// ClassifierFunc adapts a plain function to Classifier
type ClassifierFunc func(rawName string) (types.CanonicalForm, error)

// Classify implements Classifier
func (f ClassifierFunc) Classify(rawName string) (types.CanonicalForm, error) {
	return f(rawName)
}

// fat32Replacements maps typographic punctuation to the ASCII characters
// FAT32-formatted players render reliably. Every target is ASCII.
var fat32Replacements = map[rune]rune{
	'\u2014': '-',  // em dash
	'\u2013': '-',  // en dash
	'\u2018': '\'', // left single quotation mark
	'\u2019': '\'', // right single quotation mark
	'\u201c': '"',  // left double quotation mark
	'\u201d': '"',  // right double quotation mark
}

var fat32Chain = transform.Chain(runes.Map(func(r rune) rune {
	if sub, ok := fat32Replacements[r]; ok {
		return sub
	}
	return r
}), norm.NFC)

// NFC classifies names against Unicode Normalization Form C
var NFC Classifier = ClassifierFunc(func(rawName string) (types.CanonicalForm, error) {
	if err := checkEncoding(rawName); err != nil {
		return types.CanonicalForm{}, err
	}
	canonical := norm.NFC.String(rawName)
	return types.CanonicalForm{
		IsCanonical:   canonical == rawName,
		CanonicalName: canonical,
	}, nil
})

// FAT32 substitutes dashes and curly quotes, then composes to NFC
var FAT32 Classifier = ClassifierFunc(func(rawName string) (types.CanonicalForm, error) {
	if err := checkEncoding(rawName); err != nil {
		return types.CanonicalForm{}, err
	}
	canonical, _, err := transform.String(fat32Chain, rawName)
	if err != nil {
		return types.CanonicalForm{}, errors.Wrapf(err, errors.ErrClassification,
			"cannot sanitize %q", rawName)
	}
	return types.CanonicalForm{
		IsCanonical:   canonical == rawName,
		CanonicalName: canonical,
	}, nil
})

// For returns the classifier for a variant, defaulting to NFC
func For(variant types.Variant) Classifier {
	if variant == types.VariantFAT32 {
		return FAT32
	}
	return NFC
}

// IsNFC reports whether a name is already NFC
func IsNFC(name string) bool {
	return norm.NFC.IsNormalString(name)
}

func checkEncoding(rawName string) error {
	if !utf8.ValidString(rawName) {
		return errors.Newf(errors.ErrClassification,
			"name %q is not valid UTF-8", rawName)
	}
	return nil
}
