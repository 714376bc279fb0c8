package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kenziemed/medclient/internal/api"
	"github.com/kenziemed/medclient/internal/config"
	"github.com/kenziemed/medclient/internal/logging"
	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/notify"
	"github.com/kenziemed/medclient/internal/observability"
	"github.com/kenziemed/medclient/internal/storage"
	"github.com/kenziemed/medclient/internal/store"
	"go.uber.org/zap"
)

// terminalNavigator prints navigation requests; a graphical front end
// would route on them instead.
type terminalNavigator struct{}

func (terminalNavigator) NavigateTo(target string, replace bool) {
	fmt.Printf("-> %s\n", target)
}

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize logging
	if err := logging.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Initialize tracing
	observability.InitTracer()
	defer observability.ShutdownTracer()

	sessions, err := buildSessionStorage()
	if err != nil {
		log.Fatal("Failed to initialize session storage:", err)
	}

	notifier := notify.NewRecorder()
	client := api.NewClient(config.AppConfig, logging.Logger)
	s := store.New(client, sessions, notifier, terminalNavigator{}, config.AppConfig, logging.Logger)

	ctx := context.Background()
	if err := s.Restore(ctx); err != nil {
		logging.Logger.Warn("session restore failed", zap.Error(err))
	}
	if s.IsAuthenticated() {
		fmt.Printf("Signed in as %s\n", s.User().Email)
	}

	runMenu(ctx, s, notifier)
}

// buildSessionStorage selects the durable session backend from config
func buildSessionStorage() (storage.Storage, error) {
	if config.AppConfig.SessionStore == config.SessionStoreRedis {
		config.InitRedis()
		if config.Redis == nil {
			return nil, errors.New("redis is not available")
		}
		return storage.NewRedisStore(config.Redis, config.AppConfig.RedisTTL, logging.Logger), nil
	}
	return storage.NewFileStore(config.AppConfig.SessionFile, logging.Logger)
}

func runMenu(ctx context.Context, s *store.Store, notifier *notify.Recorder) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("==== KenzieMed CLI ====")
		fmt.Println("1) Sign in")
		fmt.Println("2) Register")
		fmt.Println("3) List doctors")
		fmt.Println("4) Filter doctors by specialty")
		fmt.Println("5) Doctor schedule")
		fmt.Println("6) My appointments")
		fmt.Println("7) Edit profile")
		fmt.Println("8) Who am I")
		fmt.Println("9) Sign out")
		fmt.Println("0) Exit")
		fmt.Print("Select option: ")

		choice, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			doSignIn(ctx, s, reader)
		case "2":
			doRegister(ctx, s, reader)
		case "3":
			doListDoctors(ctx, s)
		case "4":
			doFilter(s, reader)
		case "5":
			doSchedule(ctx, s, reader)
		case "6":
			doAppointments(ctx, s)
		case "7":
			doEditProfile(ctx, s, reader)
		case "8":
			doWhoAmI(s)
		case "9":
			if err := s.SignOut(ctx); err != nil {
				fmt.Println("Sign out failed:", err)
			}
		case "0":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Invalid option")
		}

		drain(notifier)
		fmt.Println()
	}
}

// drain prints the notifications an operation produced
func drain(notifier *notify.Recorder) {
	for _, notification := range notifier.Drain() {
		fmt.Printf("[%s] %s\n", notification.Severity, notification.Message)
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label, ": ")
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptDefault keeps the current value when the user enters nothing
func promptDefault(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func promptAddress(reader *bufio.Reader, current models.Address) models.Address {
	return models.Address{
		District: promptDefault(reader, "District", current.District),
		ZipCode:  promptDefault(reader, "Zip code", current.ZipCode),
		Number:   promptDefault(reader, "Number", current.Number),
		City:     promptDefault(reader, "City", current.City),
		State:    promptDefault(reader, "State", current.State),
	}
}

func doSignIn(ctx context.Context, s *store.Store, reader *bufio.Reader) {
	credentials := models.Credentials{
		Email:    prompt(reader, "Email"),
		Password: prompt(reader, "Password"),
	}

	if err := s.SignIn(ctx, credentials); err != nil {
		fmt.Println("Sign in failed:", err)
	}
}

func doRegister(ctx context.Context, s *store.Store, reader *bufio.Reader) {
	age, _ := strconv.Atoi(prompt(reader, "Age"))

	input := models.RegisterInput{
		Name:            prompt(reader, "Full name"),
		Email:           prompt(reader, "Email"),
		Password:        prompt(reader, "Password"),
		ConfirmPassword: prompt(reader, "Confirm password"),
		CPF:             prompt(reader, "CPF"),
		Age:             age,
		Sex:             prompt(reader, "Sex"),
		Contact:         prompt(reader, "Contact phone (optional)"),
		Address:         promptAddress(reader, models.Address{}),
	}

	if err := s.Register(ctx, input); err != nil {
		printValidation(err)
	}
}

func doEditProfile(ctx context.Context, s *store.Store, reader *bufio.Reader) {
	if !s.IsAuthenticated() {
		fmt.Println("Sign in first")
		return
	}

	current := s.User()
	age, _ := strconv.Atoi(promptDefault(reader, "Age", strconv.Itoa(current.Age)))

	input := models.EditProfileInput{
		Name:     promptDefault(reader, "Full name", current.Name),
		Email:    promptDefault(reader, "Email", current.Email),
		Password: prompt(reader, "New password (blank to keep)"),
		CPF:      promptDefault(reader, "CPF", current.CPF),
		Age:      age,
		Sex:      promptDefault(reader, "Sex", current.Sex),
		Contact:  promptDefault(reader, "Contact phone", current.Contact),
		Image:    current.Image,
		Address:  promptAddress(reader, current.Address),
	}

	if err := s.EditProfile(ctx, input); err != nil {
		printValidation(err)
	}
}

func printValidation(err error) {
	var validationErr *store.ValidationFailedError
	if errors.As(err, &validationErr) {
		for _, fieldError := range validationErr.Result.Errors {
			fmt.Printf("  %s: %s\n", fieldError.Field, fieldError.Message)
		}
		return
	}
	fmt.Println("Operation failed:", err)
}

func doListDoctors(ctx context.Context, s *store.Store) {
	if err := s.FetchDoctors(ctx); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	printDoctors(s.Filtered())
}

func doFilter(s *store.Store, reader *bufio.Reader) {
	query := prompt(reader, "Specialty")
	printDoctors(s.Filter(query))
}

func printDoctors(doctors []models.Doctor) {
	if len(doctors) == 0 {
		fmt.Println("No doctors to show")
		return
	}
	for _, doctor := range doctors {
		fmt.Printf("  #%d %s — %s (CRM %s)\n", doctor.ID, doctor.Name, doctor.Specialty, doctor.CRM)
	}
}

func doSchedule(ctx context.Context, s *store.Store, reader *bufio.Reader) {
	id, err := strconv.ParseInt(prompt(reader, "Doctor id"), 10, 64)
	if err != nil {
		fmt.Println("Invalid doctor id")
		return
	}

	var doctor *models.Doctor
	for _, candidate := range s.Doctors() {
		if candidate.ID == id {
			found := candidate
			doctor = &found
			break
		}
	}
	if doctor == nil {
		fmt.Println("Unknown doctor; list doctors first")
		return
	}

	if err := s.SelectDoctor(ctx, *doctor); err != nil {
		fmt.Println("Schedule fetch failed:", err)
		return
	}

	for _, slot := range s.Schedule() {
		status := "free"
		if slot.Booked {
			status = "booked"
		}
		fmt.Printf("  %s %s (%s)\n", slot.Date, slot.Hour, status)
	}
}

func doAppointments(ctx context.Context, s *store.Store) {
	if err := s.FetchAppointments(ctx); err != nil {
		if errors.Is(err, models.ErrNotAuthenticated) {
			fmt.Println("Sign in first")
			return
		}
		fmt.Println("Fetch failed:", err)
		return
	}

	appointments := s.Appointments()
	if len(appointments) == 0 {
		fmt.Println("No appointments")
		return
	}
	for _, appointment := range appointments {
		fmt.Printf("  %s %s — %s\n", appointment.Date, appointment.Hour, appointment.DoctorName)
	}
}

func doWhoAmI(s *store.Store) {
	if !s.IsAuthenticated() {
		fmt.Println("Not signed in")
		return
	}
	user := s.User()
	fmt.Printf("  %s <%s> (id %d)\n", user.Name, user.Email, user.ID)
}
