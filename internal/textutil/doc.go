// Package textutil provides the word-level text processing used to build
// shortened sample names.
//
// The primary use cases are:
//   - Normalizing punctuation in a path stem (split characters become spaces,
//     fill characters are deleted) while keeping the extension verbatim
//   - Splitting normalized text into whitespace-delimited words
//   - Removing words that start with a configured strike prefix
//   - Applying a case transform to individual words
//   - Truncating strings on rune boundaries
//
// Everything in this package is pure; run-scoped state such as the
// de-duplication word set lives in the shortener package.
package textutil
