package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	PlaceholderCustomer = "Unknown Customer"
	PlaceholderVehicle  = "Vehicle info not provided"
	PlaceholderPhone    = "No phone"
	PlaceholderLocation = "Location not specified"
	PlaceholderIssue    = "No issue description"
)

var (
	urgencyPattern = regexp.MustCompile(`(?i)Urgency:\s*(LOW|MEDIUM|HIGH|EMERGENCY)`)
	issuePrefix    = regexp.MustCompile(`(?i)^issue:\s*`)
	trailingYear   = regexp.MustCompile(`(\d{4})$`)
	spacedYear     = regexp.MustCompile(`\s+\d{4}$`)
)

// CustomerFields are the four positional lines of a customer block.
// Empty strings mean the line was absent.
type CustomerFields struct {
	Name     string
	Vehicle  string
	Phone    string
	Location string
}

// CustomerInfo is the display form of a customer block with placeholders
// substituted for absent lines.
type CustomerInfo struct {
	CustomerFields
	Issue   string
	Urgency Urgency
}

// infoLines returns the non-blank lines of a block, trimmed.
func infoLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// ParseCustomerFields reads line 1..4 as name, vehicle, phone and location.
// Nothing checks that those positions hold what they claim to.
func ParseCustomerFields(text string) CustomerFields {
	lines := infoLines(text)
	return CustomerFields{
		Name:     lineAt(lines, 0),
		Vehicle:  lineAt(lines, 1),
		Phone:    lineAt(lines, 2),
		Location: lineAt(lines, 3),
	}
}

// ParseCustomerInfo derives the card view of a block.
func ParseCustomerInfo(text string) CustomerInfo {
	fields := ParseCustomerFields(text)
	info := CustomerInfo{
		CustomerFields: CustomerFields{
			Name:     orDefault(fields.Name, PlaceholderCustomer),
			Vehicle:  orDefault(fields.Vehicle, PlaceholderVehicle),
			Phone:    orDefault(fields.Phone, PlaceholderPhone),
			Location: orDefault(fields.Location, PlaceholderLocation),
		},
		Issue:   PlaceholderIssue,
		Urgency: ExtractUrgency(text),
	}

	for _, line := range infoLines(text) {
		if strings.Contains(strings.ToLower(line), "issue:") {
			info.Issue = issuePrefix.ReplaceAllString(line, "")
			break
		}
	}
	return info
}

// ExtractUrgency returns the normalized urgency tag or UrgencyNone.
func ExtractUrgency(text string) Urgency {
	match := urgencyPattern.FindStringSubmatch(text)
	if match == nil {
		return UrgencyNone
	}
	return Urgency(strings.ToUpper(match[1]))
}

// SplitVehicle separates a trailing 4-digit year from the model.
func SplitVehicle(line string) (model, year string) {
	if line == "" {
		return "", ""
	}
	if m := trailingYear.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(spacedYear.ReplaceAllString(line, "")), m[1]
	}
	return line, ""
}

// JoinVehicle is the inverse of SplitVehicle.
func JoinVehicle(model, year string) string {
	return strings.TrimSpace(model + " " + year)
}

// ComposeCustomerInfo builds the block stored in ServiceRequest.UserInfo.
func ComposeCustomerInfo(fields CustomerFields, issue string, urgency Urgency) string {
	return fmt.Sprintf("%s\n%s\n%s\n%s\n\nIssue: %s\nUrgency: %s",
		fields.Name,
		fields.Vehicle,
		fields.Phone,
		fields.Location,
		issue,
		urgency,
	)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
