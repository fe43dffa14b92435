// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles session lifecycle operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Log in, log out, and inspect session state",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Account email address",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session and invalidate the refresh credential",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state and identity",
				Action: r.AuthStatus,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Display name"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "forgot-password",
				Usage: "Request a password reset email",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
				},
				Action: r.AuthForgotPassword,
			},
			{
				Name:  "reset-password",
				Usage: "Set a new password with an emailed reset token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "Reset token from email"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password"},
				},
				Action: r.AuthResetPassword,
			},
		},
	}
}

// catalogCommand handles the public course catalog
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Browse and search the course catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog pages",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "pages",
						Usage: "Number of pages to fetch",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Fetch every page",
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CatalogList,
			},
			{
				Name:      "search",
				Usage:     "Search the catalog server-side",
				ArgsUsage: "<query>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "Fetch every matching page"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CatalogSearch,
			},
			{
				Name:  "export",
				Usage: "Export the full catalog to csv, markdown, or text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when omitted)",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Restrict the export to a search query",
					},
				},
				Action: r.CatalogExport,
			},
			{
				Name:  "dump",
				Usage: "Dump identity, catalog, and enrollments as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "search",
						Usage: "Restrict the catalog to a search query",
					},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.CatalogDump,
			},
			{
				Name:  "history",
				Usage: "Show recent search queries",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum entries to show",
						Value: 10,
					},
				},
				Action: r.CatalogHistory,
			},
		},
	}
}

// courseCommand handles the learner's view of courses
func courseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "course",
		Usage: "Enrollment and course details",
		Commands: []*cli.Command{
			{
				Name:  "enrolled",
				Usage: "List courses you are enrolled in",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CourseEnrolled,
			},
			{
				Name:      "info",
				Usage:     "Show one course with its lecture videos",
				ArgsUsage: "<course-id>",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "course-id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CourseInfo,
			},
			{
				Name:      "enroll",
				Usage:     "Start an enrollment checkout in the browser",
				ArgsUsage: "<course-id>",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "course-id"},
				},
				Action: r.CourseEnroll,
			},
			{
				Name:      "disenroll",
				Usage:     "Drop a course you are enrolled in",
				ArgsUsage: "<course-id>",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "course-id"},
				},
				Action: r.CourseDisenroll,
			},
		},
	}
}

// instructorCommand handles course authoring and payment queries
func instructorCommand(r *Runner) *cli.Command {
	courseFlags := []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Course title"},
		&cli.StringFlag{Name: "description", Usage: "Course description"},
		&cli.StringFlag{Name: "category", Usage: "Course category"},
		&cli.StringFlag{Name: "price", Usage: "Price in dollars"},
		&cli.IntFlag{Name: "duration", Usage: "Duration in hours"},
		&cli.StringFlag{Name: "thumbnail", Usage: "Thumbnail image URL"},
	}

	return &cli.Command{
		Name:    "instructor",
		Aliases: []string{"inst"},
		Usage:   "Manage your courses, videos, and payouts",
		Commands: []*cli.Command{
			{
				Name:  "courses",
				Usage: "List courses you created",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.InstructorCourses,
			},
			{
				Name:   "create",
				Usage:  "Create a new course",
				Flags:  courseFlags,
				Action: r.InstructorCreate,
			},
			{
				Name:      "update",
				Usage:     "Update an existing course",
				ArgsUsage: "<course-id>",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "course-id"},
				},
				Flags:  courseFlags,
				Action: r.InstructorUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a course and its videos",
				ArgsUsage: "<course-id>",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "course-id"},
				},
				Action: r.InstructorDelete,
			},
			{
				Name:  "video",
				Usage: "Manage lecture videos",
				Commands: []*cli.Command{
					{
						Name:  "add",
						Usage: "Attach a lecture video to a course",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "course-id", Usage: "Course to attach to"},
							&cli.StringFlag{Name: "title", Usage: "Video title"},
							&cli.StringFlag{Name: "url", Usage: "Video URL"},
							&cli.IntFlag{Name: "duration", Usage: "Duration in minutes"},
						},
						Action: r.VideoAdd,
					},
					{
						Name:      "update",
						Usage:     "Update a lecture video",
						ArgsUsage: "<video-id>",
						Arguments: []cli.Argument{
							&cli.IntArg{Name: "video-id"},
						},
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Usage: "Video title"},
							&cli.StringFlag{Name: "url", Usage: "Video URL"},
							&cli.IntFlag{Name: "duration", Usage: "Duration in minutes"},
						},
						Action: r.VideoUpdate,
					},
					{
						Name:      "delete",
						Usage:     "Remove a lecture video",
						ArgsUsage: "<video-id>",
						Arguments: []cli.Argument{
							&cli.IntArg{Name: "video-id"},
						},
						Action: r.VideoDelete,
					},
				},
			},
			{
				Name:   "balance",
				Usage:  "Show your payment account balance",
				Action: r.InstructorBalance,
			},
			{
				Name:   "payments",
				Usage:  "List recent payments into your account",
				Action: r.InstructorPayments,
			},
			{
				Name:   "payouts",
				Usage:  "List recent payouts from your account",
				Action: r.InstructorPayouts,
			},
		},
	}
}

// tuiCommand launches the interactive catalog browser
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"browse"},
		Usage:   "Launch the interactive catalog browser",
		Action:  r.TUI,
	}
}
