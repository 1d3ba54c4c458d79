// Package memory holds process-local implementations of the credential
// store, the token store and the article catalog. All state is lost on
// restart.
package memory
