// ABOUTME: MCP server assembly
// ABOUTME: Registers every outreach tool and resource against one store
package handlers

import (
	"github.com/harperreed/outreach/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the store.
func NewServer(s *store.Store, version string) *mcp.Server {
	contactHandlers := NewContactHandlers(s)
	importHandlers := NewImportHandlers(s)
	projectHandlers := NewProjectHandlers(s)
	resourceHandlers := NewResourceHandlers(s)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "outreach",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Filter and sort outreach contacts by search text, status, category, segment, project and tags",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a prospect contact; needs at least a vendor, company, contact name, email or phone",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log an outreach touch against a contact and update its last contact and follow-up dates",
	}, contactHandlers.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_csv_import",
		Description: "Parse a CSV of prospects and show which rows would be imported; nothing is saved",
	}, importHandlers.PreviewCSVImport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "confirm_csv_import",
		Description: "Import the candidates of a previous preview_csv_import call",
	}, importHandlers.ConfirmCSVImport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ensure_project",
		Description: "Return the project with this name, creating an Active project if needed",
	}, projectHandlers.EnsureProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upsert_project",
		Description: "Create or update a project; blank fields keep their stored values",
	}, projectHandlers.UpsertProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List projects with contact and open task counts",
	}, projectHandlers.ListProjects)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add an open task, optionally tied to a contact and project",
	}, projectHandlers.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_task_status",
		Description: "Mark a task open or completed",
	}, projectHandlers.SetTaskStatus)

	server.AddResource(&mcp.Resource{
		URI:      resourceScheme + "contacts",
		Name:     "contacts",
		MIMEType: "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: resourceScheme + "contacts/{id}",
		Name:        "contact",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:      resourceScheme + "projects",
		Name:     "projects",
		MIMEType: "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:      resourceScheme + "activities",
		Name:     "activities",
		MIMEType: "application/json",
	}, resourceHandlers.ReadResource)

	return server
}
