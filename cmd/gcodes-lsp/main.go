// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"gcodes/internal/lsp"
)

const lsName = "gcodes" // Name identifier for the language server

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	// Configure debug logging (1 = debug level, nil = stderr)
	commonlog.Configure(1, nil)
	log := commonlog.GetLogger("gcodes.lsp")

	gcodeHandler := lsp.NewGcodeHandler()

	handler = protocol.Handler{
		Initialize:                     gcodeHandler.Initialize,
		Initialized:                    gcodeHandler.Initialized,
		Shutdown:                       gcodeHandler.Shutdown,
		SetTrace:                       gcodeHandler.SetTrace,
		TextDocumentDidOpen:            gcodeHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           gcodeHandler.TextDocumentDidClose,
		TextDocumentDidChange:          gcodeHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: gcodeHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	// Editors talk to the server over standard input/output
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
