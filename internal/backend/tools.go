// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"

	"taskdeck/cli/internal/task"
)

// Tools calls GET /api/tools and returns the registry in backend order.
func (h *HTTP) Tools(ctx context.Context) ([]task.Tool, error) {
	var out task.ToolsResponse
	if err := h.do(ctx, "get tools", http.MethodGet, h.endpoints.Tools, nil, &out); err != nil {
		return nil, err
	}
	return out.Tools, nil
}

// FindTool returns the named tool from list, or false when absent.
func FindTool(list []task.Tool, name string) (task.Tool, bool) {
	for _, t := range list {
		if t.Name == name {
			return t, true
		}
	}
	return task.Tool{}, false
}
