package main

import (
	"net/url"
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentURI]*document
}

type document struct {
	uri     protocol.DocumentURI
	content string
	version int32
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[protocol.DocumentURI]*document)}
}

func (ds *documentStore) get(u protocol.DocumentURI) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[u]
}

func (ds *documentStore) put(u protocol.DocumentURI, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[u] = &document{uri: u, content: content, version: version}
}

func (ds *documentStore) remove(u protocol.DocumentURI) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, u)
}

// path returns the file system path of a file:// document, or "".
func (d *document) path() string {
	pu, err := url.Parse(string(d.uri))
	if err != nil || pu.Scheme != uri.FileScheme {
		return ""
	}
	return uri.URI(d.uri).Filename()
}
