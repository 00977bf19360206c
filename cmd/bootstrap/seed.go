package bootstrap

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"
	"github.com/deringirish/PHMS/internal/repository"
	"github.com/deringirish/PHMS/internal/usecase"

	"github.com/samber/lo"
)

var seedMedications = []entity.Medication{
	{Name: "Metformin", GenericName: "Metformin Hydrochloride", Category: "Antidiabetic", CommonDosages: []string{"500mg", "850mg", "1000mg"}},
	{Name: "Glimepiride", GenericName: "Glimepiride", Category: "Antidiabetic", CommonDosages: []string{"1mg", "2mg", "4mg"}},
	{Name: "Amlodipine", GenericName: "Amlodipine Besylate", Category: "Antihypertensive", CommonDosages: []string{"2.5mg", "5mg", "10mg"}},
	{Name: "Telmisartan", GenericName: "Telmisartan", Category: "Antihypertensive", CommonDosages: []string{"20mg", "40mg", "80mg"}},
	{Name: "Atorvastatin", GenericName: "Atorvastatin Calcium", Category: "Statin", CommonDosages: []string{"10mg", "20mg", "40mg"}},
	{Name: "Rosuvastatin", GenericName: "Rosuvastatin Calcium", Category: "Statin", CommonDosages: []string{"5mg", "10mg", "20mg"}},
	{Name: "Levothyroxine", GenericName: "Levothyroxine Sodium", Category: "Thyroid", CommonDosages: []string{"25mcg", "50mcg", "100mcg"}},
	{Name: "Pantoprazole", GenericName: "Pantoprazole Sodium", Category: "Antacid", CommonDosages: []string{"20mg", "40mg"}},
	{Name: "Paracetamol", GenericName: "Acetaminophen", Category: "Analgesic", CommonDosages: []string{"500mg", "650mg"}},
	{Name: "Aspirin", GenericName: "Acetylsalicylic Acid", Category: "Antiplatelet", CommonDosages: []string{"75mg", "150mg"}},
	{Name: "Salbutamol", GenericName: "Albuterol", Category: "Bronchodilator", CommonDosages: []string{"100mcg/puff", "2mg", "4mg"}},
	{Name: "Cholecalciferol", GenericName: "Vitamin D3", Category: "Supplement", CommonDosages: []string{"1000IU", "60000IU"}},
	{Name: "Ferrous Sulfate", GenericName: "Iron", Category: "Supplement", CommonDosages: []string{"200mg", "325mg"}},
	{Name: "Amoxicillin", GenericName: "Amoxicillin", Category: "Antibiotic", CommonDosages: []string{"250mg", "500mg"}},
}

var seedNames = []struct {
	name   string
	gender string
}{
	{"Rajesh Kumar", entity.GenderMale}, {"Amit Sharma", entity.GenderMale}, {"Vijay Singh", entity.GenderMale},
	{"Suresh Patel", entity.GenderMale}, {"Anil Gupta", entity.GenderMale}, {"Deepak Nair", entity.GenderMale},
	{"Priya Sharma", entity.GenderFemale}, {"Anjali Patel", entity.GenderFemale}, {"Neha Gupta", entity.GenderFemale},
	{"Kavita Singh", entity.GenderFemale}, {"Sunita Rao", entity.GenderFemale}, {"Divya Nair", entity.GenderFemale},
}

var seedConditions = []string{
	"Type 2 Diabetes", "Hypertension", "Hyperlipidemia", "Hypothyroidism",
	"Asthma", "Obesity", "Vitamin D Deficiency", "Anemia",
}

var seedCities = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Pune"}

// Seed loads the medication catalog and, when patients > 0, that many
// synthetic patients with a few months of readings each.
func (app *App) Seed(ctx context.Context, patients, recordsPerPatient int) error {
	medicationRepo := repository.NewMedicationRepository()
	patientRepo := repository.NewPatientRepository()
	recordRepo := repository.NewHealthRecordRepository()

	tx := app.DB.WithContext(ctx).Begin()
	defer tx.Rollback()

	inserted, err := medicationRepo.CreateIfMissing(tx, seedMedications)
	if err != nil {
		return fmt.Errorf("failed to seed medications: %w", err)
	}

	rng := rand.New(rand.NewPCG(42, uint64(time.Now().UnixNano())))
	now := time.Now().UTC()

	for i := 0; i < patients; i++ {
		patient := seedPatient(rng, i)
		if err := patientRepo.Create(tx, patient); err != nil {
			return fmt.Errorf("failed to seed patient: %w", err)
		}

		for j := recordsPerPatient - 1; j >= 0; j-- {
			values := seedReading(rng, patient)
			metric.DeriveBMI(values)
			ts := now.AddDate(0, 0, -j*14-rng.IntN(5))
			record := usecase.NewHealthRecord(patient.ID, metric.Reading{Values: values}, ts, entity.SourceManual)
			if err := recordRepo.Create(tx, record); err != nil {
				return fmt.Errorf("failed to seed health record: %w", err)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	app.Log.Infof("Seeded %d medications and %d patients", inserted, patients)
	return nil
}

func seedPatient(rng *rand.Rand, i int) *entity.Patient {
	person := seedNames[i%len(seedNames)]
	age := 18 + rng.IntN(65)
	city := seedCities[rng.IntN(len(seedCities))]

	conditionCount := 0
	switch {
	case age > 60:
		conditionCount = 2 + rng.IntN(2)
	case age > 45:
		conditionCount = 1 + rng.IntN(2)
	case age > 30:
		conditionCount = rng.IntN(2)
	}
	shuffled := append([]string{}, seedConditions...)
	rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

	parts := strings.Fields(strings.ToLower(person.name))
	return &entity.Patient{
		FullName:          person.name,
		Age:               lo.ToPtr(age),
		Gender:            person.gender,
		ContactNumber:     fmt.Sprintf("+91 %05d%05d", 70000+rng.IntN(30000), rng.IntN(100000)),
		Email:             fmt.Sprintf("%s.%s%d@example.com", parts[0], parts[len(parts)-1], i+1),
		Address:           fmt.Sprintf("%d, Sector %d, %s", 1+rng.IntN(500), 1+rng.IntN(50), city),
		MedicalConditions: shuffled[:conditionCount],
	}
}

func seedReading(rng *rand.Rand, patient *entity.Patient) metric.Values {
	has := func(condition string) bool {
		return lo.Contains(patient.MedicalConditions, condition)
	}
	between := func(low, high float64) float64 {
		return math.Round((low+rng.Float64()*(high-low))*10) / 10
	}

	v := metric.Values{
		metric.HeartRate:   between(65, 90),
		metric.Temperature: between(36.5, 37.2),
		metric.SpO2:        between(95, 99),
	}

	if has("Hypertension") {
		v[metric.BPSystolic], v[metric.BPDiastolic] = between(130, 160), between(85, 100)
	} else {
		v[metric.BPSystolic], v[metric.BPDiastolic] = between(110, 135), between(70, 85)
	}

	baseWeight, baseHeight := 70.0, 172.0
	if patient.Gender == entity.GenderFemale {
		baseWeight, baseHeight = 58, 160
	}
	if has("Obesity") {
		v[metric.Weight] = baseWeight + between(15, 30)
	} else {
		v[metric.Weight] = baseWeight + between(-10, 15)
	}
	v[metric.Height] = baseHeight + between(-8, 8)

	if has("Type 2 Diabetes") {
		v[metric.SugarFasting], v[metric.SugarPostMeal], v[metric.HbA1c] = between(130, 200), between(180, 280), between(7, 10.5)
	} else {
		v[metric.SugarFasting], v[metric.SugarPostMeal], v[metric.HbA1c] = between(80, 105), between(100, 140), between(4.5, 5.6)
	}

	if has("Hyperlipidemia") {
		v[metric.CholesterolTotal], v[metric.CholesterolLDL] = between(220, 280), between(140, 190)
	} else {
		v[metric.CholesterolTotal], v[metric.CholesterolLDL] = between(150, 199), between(70, 129)
	}
	v[metric.CholesterolHDL] = between(35, 65)
	v[metric.Triglycerides] = between(80, 220)

	if has("Hypothyroidism") {
		v[metric.TSH] = between(5, 12)
	} else {
		v[metric.TSH] = between(0.5, 4.5)
	}
	if has("Vitamin D Deficiency") {
		v[metric.VitaminD] = between(8, 19)
	} else {
		v[metric.VitaminD] = between(25, 60)
	}
	if has("Anemia") {
		v[metric.Hemoglobin] = between(8, 11)
	} else {
		v[metric.Hemoglobin] = between(12, 16)
	}
	return v
}
