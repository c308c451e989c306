package availability

// Preset weekly schedules offered when configuring a resource. Stored
// verbatim in the resource's availability_schedule column.
var ScheduleTemplates = map[string]struct {
	Name     string
	Schedule string
}{
	"24/7": {
		Name: "24/7 Access",
		Schedule: `{"monday":[{"start":"00:00","end":"23:59"}],"tuesday":[{"start":"00:00","end":"23:59"}],` +
			`"wednesday":[{"start":"00:00","end":"23:59"}],"thursday":[{"start":"00:00","end":"23:59"}],` +
			`"friday":[{"start":"00:00","end":"23:59"}],"saturday":[{"start":"00:00","end":"23:59"}],` +
			`"sunday":[{"start":"00:00","end":"23:59"}]}`,
	},
	"business": {
		Name: "Business Hours (Mon-Fri 9AM-5PM)",
		Schedule: `{"monday":[{"start":"09:00","end":"17:00"}],"tuesday":[{"start":"09:00","end":"17:00"}],` +
			`"wednesday":[{"start":"09:00","end":"17:00"}],"thursday":[{"start":"09:00","end":"17:00"}],` +
			`"friday":[{"start":"09:00","end":"17:00"}],"saturday":[],"sunday":[]}`,
	},
	"extended": {
		Name: "Extended Hours (Mon-Fri 7AM-10PM)",
		Schedule: `{"monday":[{"start":"07:00","end":"22:00"}],"tuesday":[{"start":"07:00","end":"22:00"}],` +
			`"wednesday":[{"start":"07:00","end":"22:00"}],"thursday":[{"start":"07:00","end":"22:00"}],` +
			`"friday":[{"start":"07:00","end":"22:00"}],"saturday":[],"sunday":[]}`,
	},
	"academic": {
		Name: "Academic Hours (Mon-Fri 8AM-8PM, Sat 10AM-6PM)",
		Schedule: `{"monday":[{"start":"08:00","end":"20:00"}],"tuesday":[{"start":"08:00","end":"20:00"}],` +
			`"wednesday":[{"start":"08:00","end":"20:00"}],"thursday":[{"start":"08:00","end":"20:00"}],` +
			`"friday":[{"start":"08:00","end":"20:00"}],"saturday":[{"start":"10:00","end":"18:00"}],"sunday":[]}`,
	},
	"weekends": {
		Name: "Weekends Only (Sat-Sun 10AM-6PM)",
		Schedule: `{"monday":[],"tuesday":[],"wednesday":[],"thursday":[],"friday":[],` +
			`"saturday":[{"start":"10:00","end":"18:00"}],"sunday":[{"start":"10:00","end":"18:00"}]}`,
	},
}

// TemplateSchedule returns the schedule JSON for a preset key, or "" when
// the key is unknown.
func TemplateSchedule(key string) string {
	template, ok := ScheduleTemplates[key]
	if !ok {
		return ""
	}
	return template.Schedule
}
