package schedule

// AvailabilityInput identifies one availability query.
type AvailabilityInput struct {
	TenantID    uint
	Date        string // YYYY-MM-DD, interpreted in the tenant timezone
	ServiceName string
}

// AvailabilityResult is the ordered slot list for one query. An empty
// Slots list with no error means no staff can take the service that day.
type AvailabilityResult struct {
	ServiceID uint   `json:"service_id"`
	Date      string `json:"date"`
	Slots     []Slot `json:"slots"`
}

// SlotByLabel finds the slot rendering to label, or nil.
func (r *AvailabilityResult) SlotByLabel(label string) *Slot {
	for i := range r.Slots {
		if r.Slots[i].Label == label {
			return &r.Slots[i]
		}
	}
	return nil
}
