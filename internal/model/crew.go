package model

// Crew is a staff member that can be assigned to journeys through the
// journey_crew join table.
type Crew struct {
    ID        uint64 // crews.id
    FirstName string // crews.first_name
    LastName  string // crews.last_name
}

// FullName joins first and last name for display.
func (c Crew) FullName() string {
    return c.FirstName + " " + c.LastName
}
