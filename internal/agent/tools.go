package agent

// Tool names understood by the dispatcher.
const (
	ToolGetServices       = "get_services"
	ToolCheckAvailability = "check_availability"
	ToolBookAppointment   = "book_appointment"

	ToolListStaff        = "list_staff"
	ToolCreateStaff      = "create_staff"
	ToolDeleteStaff      = "delete_staff"
	ToolSetStaffSchedule = "set_staff_schedule"
	ToolCreateService    = "create_service"
	ToolUpdateService    = "update_service"
	ToolDeleteService    = "delete_service"
)

// BaseTools is the schema every conversation gets.
func BaseTools() []ToolDecl {
	return []ToolDecl{
		{
			Name:        ToolGetServices,
			Description: "Get list of services offered by the business with prices and durations",
		},
		{
			Name:        ToolCheckAvailability,
			Description: "Check available slots for a service. Returns a list of times where at least one staff is free.",
			Params: map[string]Param{
				"service_name": {Type: "string", Description: "Name of the service"},
				"date":         {Type: "string", Description: "YYYY-MM-DD format (default to today)"},
			},
			Required: []string{"service_name"},
		},
		{
			Name:        ToolBookAppointment,
			Description: "Book an appointment at a specific time.",
			Params: map[string]Param{
				"client_name":  {Type: "string"},
				"client_phone": {Type: "string"},
				"service_name": {Type: "string"},
				"start_time":   {Type: "string", Description: "ISO 8601 datetime string (e.g. 2026-02-20T10:00:00Z)"},
			},
			Required: []string{"client_name", "client_phone", "service_name", "start_time"},
		},
	}
}

// AdminTools is the privileged schema, offered only to sessions the
// authorization gate has elevated.
func AdminTools() []ToolDecl {
	return []ToolDecl{
		{
			Name:        ToolListStaff,
			Description: "ADMIN ONLY: List all staff members with IDs.",
		},
		{
			Name:        ToolCreateStaff,
			Description: "ADMIN ONLY: Create a new staff member account.",
			Params: map[string]Param{
				"full_name": {Type: "string"},
				"email":     {Type: "string"},
				"role":      {Type: "string", Enum: []string{"admin", "staff"}},
				"password":  {Type: "string"},
			},
			Required: []string{"full_name", "email", "role"},
		},
		{
			Name:        ToolDeleteStaff,
			Description: "ADMIN ONLY: Delete a staff member by ID.",
			Params: map[string]Param{
				"staff_id": {Type: "integer"},
			},
			Required: []string{"staff_id"},
		},
		{
			Name:        ToolSetStaffSchedule,
			Description: "ADMIN ONLY: Set weekly working hours for a staff member. Replaces the whole week.",
			Params: map[string]Param{
				"staff_id": {Type: "integer"},
				"schedule": {
					Type: "array",
					Items: &Param{
						Type: "object",
						Properties: map[string]Param{
							"day_of_week": {Type: "integer", Description: "0=Sunday, 1=Monday, ..., 6=Saturday"},
							"start_time":  {Type: "string", Description: "HH:MM format (e.g. 09:00)"},
							"end_time":    {Type: "string", Description: "HH:MM format (e.g. 17:00)"},
							"is_working":  {Type: "boolean"},
						},
						Required: []string{"day_of_week", "is_working"},
					},
				},
			},
			Required: []string{"staff_id", "schedule"},
		},
		{
			Name:        ToolCreateService,
			Description: "ADMIN ONLY: Create a new service offered by the business.",
			Params: map[string]Param{
				"name":             {Type: "string", Description: "Service name (e.g. Haircut, Massage)"},
				"description":      {Type: "string"},
				"duration_minutes": {Type: "integer", Description: "Duration in minutes (e.g. 30, 60)"},
				"price":            {Type: "number"},
				"buffer_minutes":   {Type: "integer", Description: "Buffer time between appointments (default 0)"},
				"color":            {Type: "string", Description: "Hex color code (default #6366f1)"},
			},
			Required: []string{"name", "duration_minutes", "price"},
		},
		{
			Name:        ToolUpdateService,
			Description: "ADMIN ONLY: Update an existing service by ID. Call get_services first to find the ID.",
			Params: map[string]Param{
				"service_id":       {Type: "integer"},
				"name":             {Type: "string"},
				"description":      {Type: "string"},
				"duration_minutes": {Type: "integer"},
				"price":            {Type: "number"},
				"buffer_minutes":   {Type: "integer"},
				"color":            {Type: "string"},
			},
			Required: []string{"service_id"},
		},
		{
			Name:        ToolDeleteService,
			Description: "ADMIN ONLY: Delete a service by ID. Call get_services first to find the ID.",
			Params: map[string]Param{
				"service_id": {Type: "integer"},
			},
			Required: []string{"service_id"},
		},
	}
}

// ToolsFor returns the schema offered to this session. Privileged
// declarations are structurally absent unless the session is authorized.
func ToolsFor(authorized bool) []ToolDecl {
	tools := BaseTools()
	if authorized {
		tools = append(tools, AdminTools()...)
	}
	return tools
}

// IsPrivileged reports whether a tool name requires an elevated session.
func IsPrivileged(name string) bool {
	switch name {
	case ToolListStaff, ToolCreateStaff, ToolDeleteStaff, ToolSetStaffSchedule,
		ToolCreateService, ToolUpdateService, ToolDeleteService:
		return true
	}
	return false
}
