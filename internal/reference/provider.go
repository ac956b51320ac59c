// Package reference serves fixed, illustrative dental-care data. Nothing here
// is stored or mutated; every call returns a fresh copy.
package reference

import (
	"slices"
	"strings"
)

type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) UpcomingAppointments() []Appointment {
	return slices.Clone(appointments)
}

func (p *Provider) Patient() Patient {
	pt := patient
	pt.MedicalHistory = slices.Clone(patient.MedicalHistory)
	return pt
}

func (p *Provider) TreatmentHistory() []Treatment {
	return slices.Clone(treatments)
}

// DentalTips returns every tip when category is empty, otherwise the tips
// whose category name equals category exactly, ignoring case ("daily_care"
// matches DAILY_CARE, " daily_care " matches nothing).
func (p *Provider) DentalTips(category string) []DentalTip {
	if category == "" {
		return slices.Clone(tips)
	}
	out := make([]DentalTip, 0, len(tips))
	for _, t := range tips {
		if strings.EqualFold(string(t.Category), category) {
			out = append(out, t)
		}
	}
	return out
}

var appointments = []Appointment{
	{
		ID:              "1",
		PatientName:     "Nguyễn Văn B",
		DoctorName:      "Dr. Nguyễn Văn A",
		AppointmentType: "Khám định kỳ",
		DateTime:        "25/12/2024 09:00",
		Status:          AppointmentConfirmed,
		Notes:           "Khám tổng quát và vệ sinh răng",
	},
	{
		ID:              "2",
		PatientName:     "Nguyễn Văn B",
		DoctorName:      "Dr. Nguyễn Văn A",
		AppointmentType: "Tẩy trắng răng",
		DateTime:        "26/12/2024 10:00",
		Status:          AppointmentScheduled,
		Notes:           "Điều trị tẩy trắng răng chuyên nghiệp",
	},
	{
		ID:              "3",
		PatientName:     "Nguyễn Văn B",
		DoctorName:      "Dr. Nguyễn Văn A",
		AppointmentType: "Nhổ răng khôn",
		DateTime:        "27/12/2024 11:00",
		Status:          AppointmentScheduled,
		Notes:           "Nhổ răng khôn hàm dưới",
	},
}

var patient = Patient{
	ID:          "patient_1",
	Name:        "Nguyễn Văn B",
	Phone:       "0901234567",
	Email:       "nguyenvanb@email.com",
	DateOfBirth: "15/03/1996",
	Address:     "123 Đường ABC, Quận 1, TP.HCM",
	MedicalHistory: []string{
		"Dị ứng với penicillin",
		"Tiền sử niềng răng",
		"Không có bệnh mãn tính",
	},
}

var treatments = []Treatment{
	{
		ID:            "t1",
		PatientID:     "patient_1",
		TreatmentType: "Tẩy trắng răng",
		Description:   "Tẩy trắng răng bằng công nghệ LED",
		Date:          "10/11/2024",
		Status:        TreatmentCompleted,
		Cost:          2500000,
		Notes:         "Kết quả tốt, răng trắng sáng hơn 3 tông",
	},
	{
		ID:            "t2",
		PatientID:     "patient_1",
		TreatmentType: "Vệ sinh răng miệng",
		Description:   "Cạo vôi răng và đánh bóng",
		Date:          "11/11/2024",
		Status:        TreatmentCompleted,
		Cost:          500000,
		Notes:         "Vệ sinh răng định kỳ, nướu khỏe mạnh",
	},
}

var tips = []DentalTip{
	{
		ID:       "tip1",
		Title:    "Đánh răng đúng cách",
		Content:  "Đánh răng ít nhất 2 phút, chuyển động tròn nhẹ nhàng từ nướu xuống răng",
		Category: TipDailyCare,
		Emoji:    "🦷",
	},
	{
		ID:       "tip2",
		Title:    "Sử dụng chỉ nha khoa",
		Content:  "Dùng chỉ nha khoa hàng ngày để loại bỏ mảng bám giữa răng",
		Category: TipDailyCare,
		Emoji:    "🧵",
	},
	{
		ID:       "tip3",
		Title:    "Tránh thuốc lá",
		Content:  "Hút thuốc gây hại nghiêm trọng đến răng miệng và nướu",
		Category: TipPrevention,
		Emoji:    "🚭",
	},
	{
		ID:       "tip4",
		Title:    "Ăn uống lành mạnh",
		Content:  "Hạn chế đường và acid, tăng cường thực phẩm giàu canxi",
		Category: TipNutrition,
		Emoji:    "🍎",
	},
	{
		ID:       "tip5",
		Title:    "Uống đủ nước",
		Content:  "Nước giúp rửa trôi vi khuẩn và duy trì độ ẩm cho miệng",
		Category: TipGeneral,
		Emoji:    "💧",
	},
}
