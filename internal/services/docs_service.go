package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"rideapp/internal/repositories"
	"rideapp/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the ride confirmation slip as a PDF.
type DocsService struct {
	Rides     repositories.RideRepository
	Catalog   repositories.CatalogRepository
	RequestID string
	Loader    func(int64) (rideDocData, error)
}

type rideDocData struct {
	RideID         int64
	Status         string
	GuestName      string
	GuestCategory  string
	Phone          string
	PassengerCount int
	ServiceType    string
	CarType        string
	Pickup         string
	FirstStop      string
	Dropoff        string
	PickupDate     string
	PickupTime     string
	EventName      string
}

// GenerateConfirmation returns the PDF bytes and a download filename.
func (s DocsService) GenerateConfirmation(rideID int64) ([]byte, string, error) {
	data, err := s.loadRideDocData(rideID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("ride_id=%d", rideID))
	return buildConfirmationPDF(data)
}

func (s DocsService) loadRideDocData(rideID int64) (rideDocData, error) {
	if s.Loader != nil {
		return s.Loader(rideID)
	}

	var out rideDocData
	ride, err := s.Rides.GetByID(rideID)
	if err != nil {
		return out, err
	}

	out.RideID = ride.ID
	out.Status = ride.Status
	out.GuestName = ride.GuestName
	out.GuestCategory = ride.GuestCategory
	out.Phone = strings.TrimSpace(ride.PhoneCountryCode + " " + ride.PhoneNumber)
	out.PassengerCount = ride.PassengerCount
	out.ServiceType = ride.ServiceType
	out.CarType = ride.CarType
	out.Pickup = ride.PickupLocation
	out.FirstStop = ride.FirstStopLocation
	out.Dropoff = ride.DropoffLocation
	out.PickupDate = ride.PickupDate
	out.PickupTime = ride.PickupTime

	if ride.PickupHubID != 0 {
		if hub, err := s.Catalog.GetHubByID(ride.PickupHubID); err == nil {
			out.Pickup = hub.Name
		}
	}
	if ride.EventID != 0 {
		if event, err := s.Catalog.GetEventByID(ride.EventID); err == nil {
			out.EventName = event.Name
		}
	}
	return out, nil
}

func buildConfirmationPDF(d rideDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ride Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RIDE CONFIRMATION")
	pdf.Ln(12)

	route := fmt.Sprintf("%s -> %s", safe(d.Pickup, "-"), safe(d.Dropoff, "-"))
	if strings.TrimSpace(d.FirstStop) != "" {
		route = fmt.Sprintf("%s -> %s -> %s", safe(d.Pickup, "-"), d.FirstStop, safe(d.Dropoff, "-"))
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ride          : #%d", d.RideID),
		fmt.Sprintf("Status        : %s", safe(d.Status, "-")),
		fmt.Sprintf("Event         : %s", safe(d.EventName, "-")),
		fmt.Sprintf("Guest         : %s (%s)", safe(d.GuestName, "-"), safe(d.GuestCategory, "-")),
		fmt.Sprintf("Phone         : %s", safe(d.Phone, "-")),
		fmt.Sprintf("Passengers    : %d", d.PassengerCount),
		fmt.Sprintf("Service       : %s", safe(d.ServiceType, "-")),
		fmt.Sprintf("Vehicle class : %s", safe(d.CarType, "-")),
		fmt.Sprintf("Route         : %s", route),
		fmt.Sprintf("Date/Time     : %s %s", safe(d.PickupDate, "-"), safe(d.PickupTime, "-")),
		fmt.Sprintf("Issued        : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this confirmation to your driver at pickup.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RIDE_%d_%s.pdf", d.RideID, safeFilenamePart(d.GuestName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
