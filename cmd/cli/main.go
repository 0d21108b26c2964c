package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "bonusbank-cli",
		Short: "BonusBank CLI tool",
		Long:  `A command line interface for interacting with the BonusBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BonusBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "JWT token for authenticated requests")

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(statisticsCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Run: func(cmd *cobra.Command, args []string) {
			result, status := get("/health")
			fmt.Printf("Status: %d\n", status)
			printJSON(result)
		},
	}
}

func registerCmd() *cobra.Command {
	var mobile, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new customer",
		Run: func(cmd *cobra.Command, args []string) {
			result, status := post("/api/v1/users/register", map[string]string{
				"mobile":     mobile,
				"password":   password,
				"first_name": firstName,
				"last_name":  lastName,
			})
			if status != http.StatusCreated {
				fmt.Printf("Registration FAILED (Status: %d)\n", status)
				printJSON(result)
				os.Exit(1)
			}
			printJSON(result)
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "Mobile number")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")

	return cmd
}

func loginCmd() *cobra.Command {
	var mobile, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a JWT token",
		Run: func(cmd *cobra.Command, args []string) {
			result, status := post("/api/v1/users/login", map[string]string{
				"mobile":   mobile,
				"password": password,
			})
			if status != http.StatusOK {
				fmt.Printf("Login FAILED (Status: %d)\n", status)
				printJSON(result)
				os.Exit(1)
			}
			fmt.Printf("Token: %s\n", result["token"])
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "Mobile number")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

func statisticsCmd() *cobra.Command {
	var mobile string

	cmd := &cobra.Command{
		Use:   "statistics",
		Short: "List user statistics (staff only)",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/reports/statistics"
			if mobile != "" {
				path += "?mobile=" + mobile
			}
			result, status := get(path)
			if status != http.StatusOK {
				fmt.Printf("Request FAILED (Status: %d)\n", status)
				printJSON(result)
				os.Exit(1)
			}
			printJSON(result)
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "Filter by mobile number")

	return cmd
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep [interest|settlement]",
		Short: "Trigger a settlement sweep now (bank owner only)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, status := post("/api/v1/admin/sweeps/"+args[0], nil)
			if status != http.StatusOK {
				fmt.Printf("Sweep FAILED (Status: %d)\n", status)
				printJSON(result)
				os.Exit(1)
			}
			printJSON(result)
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func get(path string) (map[string]any, int) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	return do(req)
}

func post(path string, payload any) (map[string]any, int) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(req)
}

func do(req *http.Request) (map[string]any, int) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			// Non-object responses (e.g. arrays) are wrapped for display.
			result = map[string]any{"response": truncate(string(body), 2000)}
		}
	}
	return result, resp.StatusCode
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
