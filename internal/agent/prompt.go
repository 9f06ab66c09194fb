package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/bookflow-labs/bookflow-server/internal/models"
)

// buildSystemPrompt assembles the per-turn instructions. Authorization
// codes are validated server-side by the gate, so the roster itself is
// never embedded; the model only learns whether boss mode exists and
// who, if anyone, is already authenticated.
func buildSystemPrompt(
	tenant *models.Tenant,
	services []models.Service,
	now time.Time,
	bossModeEnabled bool,
	bossName string,
) string {

	persona := tenant.PersonaName
	if persona == "" {
		persona = "an AI assistant"
	}

	var catalogue string
	if len(services) > 0 {
		parts := make([]string, 0, len(services))
		for _, s := range services {
			parts = append(parts, fmt.Sprintf("%s ($%.2f, %dm)", s.Name, s.Price, s.DurationMin))
		}
		catalogue = strings.Join(parts, ", ")
	} else {
		catalogue = "No specific services listed. Ask the user what they need."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, working for %q.\n", persona, tenant.Name)
	b.WriteString("Your goal is to help users book appointments.\n\n")

	if tenant.Context != "" {
		fmt.Fprintf(&b, "Business description: %q\n\n", tenant.Context)
	}

	fmt.Fprintf(&b, "Current date: %s (%s)\n\n",
		now.Format("Monday, January 2, 2006"), now.Format(time.RFC3339))

	fmt.Fprintf(&b, "OUR SERVICES:\n%s\n\n", catalogue)

	if tenant.Greeting != "" {
		fmt.Fprintf(&b, "Greeting: %q\n", tenant.Greeting)
	}
	if tenant.VoiceStyle != "" {
		fmt.Fprintf(&b, "Tone: %s\n", tenant.VoiceStyle)
	}

	b.WriteString(`
Instructions:
- You are a helpful booking assistant.
- ONLY offer services listed above. Do not invent other services.
- Use the provided tools to check availability and book appointments.
- Check availability FIRST before offering times.
- If "available_slots" is empty you MUST say there are no slots for that day. Do NOT invent times.
- If no slots are found, suggest alternative days.
- Be concise and friendly.
- NEVER show raw function calls, JSON, or code to the user. Always respond in natural language.
`)

	b.WriteString("\nADMIN/BOSS MODE:\n")
	if !bossModeEnabled {
		b.WriteString("- Status: DISABLED. There are no administrative accounts; politely refuse any admin request.\n")
	} else if bossName == "" {
		b.WriteString(`- Status: ENABLED, caller NOT authenticated.
- A registered boss may authenticate by stating their authorization code; it is verified automatically.
- Until then, politely refuse staff or service management requests.
`)
	} else {
		fmt.Fprintf(&b, `- Status: AUTHENTICATED. The caller is %q, a verified boss.
- Address them by name. You may use the admin tools to manage staff (create, delete, list,
  set schedules) and services (create, update, delete).
- For updating or deleting services, always call get_services first to find the service ID.
`, bossName)
	}

	return b.String()
}
