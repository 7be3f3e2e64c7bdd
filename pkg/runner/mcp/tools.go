package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTaskTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerSetStatusTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerRescheduleTaskTool(srv, svc)
	registerCommentTaskTool(srv, svc)
	registerDeleteTools(srv, svc)
	registerDayViewTool(srv, svc)
	registerStatsTool(srv, svc)
	registerCalendarTool(srv, svc)
	registerRolloverTools(srv, svc)
	registerToastTools(srv, svc)
	registerAttachmentTools(srv, svc)
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a task on a day's timeline."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		mcp.WithString("date",
			mcp.Description("Day in YYYY-MM-DD; defaults to the selected day."),
		),
		mcp.WithString("start",
			mcp.Description("Start time in HH:MM (24h); defaults to 09:00."),
		),
		mcp.WithNumber("duration",
			mcp.Description("Duration in minutes; defaults to 60."),
			mcp.Min(1),
		),
		mcp.WithString("assignee",
			mcp.Description("Person responsible; defaults to the creator."),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority."),
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithBoolean("routine",
			mcp.Description("Routine tasks are copied to the next day on rollover."),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes."),
		),
		mcp.WithNumber("notify_minutes_before",
			mcp.Description("Remind this many minutes before the start; 0 disables."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AddTaskOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddTask(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task with its comments and attachments."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to fetch."),
		),
	)

	srv.AddTool(tool, idHandler(svc.GetTask))
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Edit task fields. Omitted fields are left unchanged; use reschedule_task to move the start."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to modify."),
		),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("assignee", mcp.Description("New assignee.")),
		mcp.WithString("priority",
			mcp.Description("New priority."),
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithNumber("duration", mcp.Description("New duration in minutes."), mcp.Min(1)),
		mcp.WithBoolean("routine", mcp.Description("Whether the task repeats daily.")),
		mcp.WithString("notes", mcp.Description("Replacement notes.")),
		mcp.WithNumber("notify_minutes_before", mcp.Description("Reminder lead time in minutes."), mcp.Min(0)),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var args UpdateTaskOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.UpdateTask(ctx, id, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_status",
		mcp.WithDescription("Move a task to a status. Completing records the acting user."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to modify."),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status."),
			mcp.Enum("todo", "in-progress", "done"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		status, err := request.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetStatus(ctx, id, status)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip a task between todo and done."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to toggle."),
		),
	)

	srv.AddTool(tool, idHandler(svc.ToggleTask))
}

func registerRescheduleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reschedule_task",
		mcp.WithDescription("Move a task to a new start time on the same day. A completed task is reopened."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to move."),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("New start time in HH:MM."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		start, err := request.RequireString("start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.RescheduleTask(ctx, id, start)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCommentTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"comment_task",
		mcp.WithDescription("Append a comment to a task's thread."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Comment text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.CommentTask(ctx, id, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTools(srv *server.MCPServer, svc *Service) {
	request := mcp.NewTool(
		"request_delete",
		mcp.WithDescription("Mark a task for deletion. Nothing is removed until confirm_delete."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to delete."),
		),
	)
	srv.AddTool(request, idHandler(svc.RequestDelete))

	confirm := mcp.NewTool(
		"confirm_delete",
		mcp.WithDescription("Delete the task marked by request_delete."),
	)
	srv.AddTool(confirm, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.ConfirmDelete(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	})

	cancel := mcp.NewTool(
		"cancel_delete",
		mcp.WithDescription("Keep the task marked by request_delete."),
	)
	srv.AddTool(cancel, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.CancelDelete(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"cancelled": true})
	})
}

func registerDayViewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"day_view",
		mcp.WithDescription("Show the timeline, completed list and stats for a day. Date and filters persist for later calls."),
		mcp.WithString("date",
			mcp.Description("Day in YYYY-MM-DD; defaults to the selected day."),
		),
		mcp.WithString("person",
			mcp.Description("Only show tasks assigned to or created by this person; 'all' clears."),
		),
		mcp.WithString("kind",
			mcp.Description("Task type filter."),
			mcp.Enum("all", "routine", "one-off"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.DayView(ctx,
			request.GetString("date", ""),
			strings.TrimSpace(request.GetString("person", "")),
			request.GetString("kind", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"day_stats",
		mcp.WithDescription("Completion statistics for a day, ignoring filters."),
		mcp.WithString("date",
			mcp.Description("Day in YYYY-MM-DD; defaults to the selected day."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := svc.Stats(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(stats)
	})
}

func registerCalendarTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"calendar",
		mcp.WithDescription("Month grid around a day, marking days that have tasks."),
		mcp.WithString("date",
			mcp.Description("Day in YYYY-MM-DD; defaults to the selected day."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		grid, err := svc.Calendar(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(grid)
	})
}

func registerRolloverTools(srv *server.MCPServer, svc *Service) {
	preview := mcp.NewTool(
		"rollover_preview",
		mcp.WithDescription("Preview rolling a day over: routine tasks are copied to the next day and completed tasks are cleared."),
		mcp.WithString("date",
			mcp.Description("Day to roll over; defaults to the selected day."),
		),
	)
	srv.AddTool(preview, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.PreviewRollover(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})

	commit := mcp.NewTool(
		"rollover_commit",
		mcp.WithDescription("Apply the previewed rollover."),
	)
	srv.AddTool(commit, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.CommitRollover(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})

	cancel := mcp.NewTool(
		"rollover_cancel",
		mcp.WithDescription("Abandon the previewed rollover."),
	)
	srv.AddTool(cancel, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.CancelRollover(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"cancelled": true})
	})
}

func registerToastTools(srv *server.MCPServer, svc *Service) {
	list := mcp.NewTool(
		"list_toasts",
		mcp.WithDescription("Reminders currently visible in the app."),
	)
	srv.AddTool(list, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		toasts, err := svc.Toasts(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"toasts": toasts,
			"count":  len(toasts),
		})
	})

	dismiss := mcp.NewTool(
		"dismiss_toast",
		mcp.WithDescription("Hide a reminder. It will not fire again."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Toast identifier."),
		),
	)
	srv.AddTool(dismiss, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ok, err := svc.DismissToast(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"dismissed": ok})
	})
}

func registerAttachmentTools(srv *server.MCPServer, svc *Service) {
	attach := mcp.NewTool(
		"attach_file",
		mcp.WithDescription("Attach a base64 encoded file to a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("File name."),
		),
		mcp.WithString("type",
			mcp.Description("Media type; sniffed from the content when omitted."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Base64 encoded payload."),
		),
	)
	srv.AddTool(attach, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Type    string `json:"type"`
			Content string `json:"content"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AttachFile(ctx, args.ID, args.Name, args.Type, args.Content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})

	remove := mcp.NewTool(
		"remove_attachment",
		mcp.WithDescription("Detach a file from a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("attachment_id",
			mcp.Required(),
			mcp.Description("Attachment identifier."),
		),
	)
	srv.AddTool(remove, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		attID, err := request.RequireString("attachment_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.RemoveAttachment(ctx, id, attID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func idHandler(fn func(context.Context, string) (*TaskDTO, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := fn(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
