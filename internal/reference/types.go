package reference

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "SCHEDULED"
	AppointmentConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
	AppointmentCancelled  AppointmentStatus = "CANCELLED"
)

type TreatmentStatus string

const (
	TreatmentPlanned    TreatmentStatus = "PLANNED"
	TreatmentInProgress TreatmentStatus = "IN_PROGRESS"
	TreatmentCompleted  TreatmentStatus = "COMPLETED"
	TreatmentCancelled  TreatmentStatus = "CANCELLED"
)

type TipCategory string

const (
	TipDailyCare  TipCategory = "DAILY_CARE"
	TipPrevention TipCategory = "PREVENTION"
	TipEmergency  TipCategory = "EMERGENCY"
	TipNutrition  TipCategory = "NUTRITION"
	TipGeneral    TipCategory = "GENERAL"
)

type Appointment struct {
	ID              string            `json:"id"`
	PatientName     string            `json:"patientName"`
	DoctorName      string            `json:"doctorName"`
	AppointmentType string            `json:"appointmentType"`
	DateTime        string            `json:"dateTime"`
	Status          AppointmentStatus `json:"status"`
	Notes           string            `json:"notes"`
}

type Patient struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	DateOfBirth    string   `json:"dateOfBirth"`
	Address        string   `json:"address"`
	MedicalHistory []string `json:"medicalHistory"`
}

type Treatment struct {
	ID            string          `json:"id"`
	PatientID     string          `json:"patientId"`
	TreatmentType string          `json:"treatmentType"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	Status        TreatmentStatus `json:"status"`
	Cost          float64         `json:"cost"`
	Notes         string          `json:"notes"`
}

type DentalTip struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Category TipCategory `json:"category"`
	Emoji    string      `json:"emoji"`
}
