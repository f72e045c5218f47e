// Package todo defines the task record and the error kinds shared by the
// manager, the store and the CLI.
//
// A record is stored in the task file as:
//
//	{
//	  "title": "Buy milk",
//	  "completed": false,
//	  "created_at": "2026-01-01T09:30:00Z",
//	  "priority": 2
//	}
//
// # Priority Range
//
//   - 1: Urgent (highest)
//   - 2: High
//   - 3: Medium
//   - 4: Low (default)
//
// Records written before priorities existed have no "priority" field and
// decode with priority 4.
package todo
