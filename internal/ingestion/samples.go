package ingestion

// SampleResume is substituted when a generation cycle has no resume
const SampleResume = `Vijay Hosapeti
Email: vijay@example.com | Phone: +91-XXXXXXXXXX
Frontend Developer — React, Vite, Tailwind.

Experience:
• Deepfake-Detector UI — Built React UI for live detection demo (React, Firebase).
• Portfolio Generator — Created an automated portfolio generator using Vite.

Education: B.E. in Engineering — Acharya Institute of Technology

Skills: React, JavaScript, HTML, CSS, Tailwind, Firebase`

// SampleJobDescription is substituted when a generation cycle has no job description
const SampleJobDescription = `We are hiring a Frontend Engineer (React) to build scalable, responsive web apps. Required: 3+ years React, strong JS, experience with Vite or similar tooling, CSS/Tailwind, REST APIs, and Git. Responsibilities: build UI components, collaborate with backend, ensure accessibility, and ship features quickly.`

// Inputs are the two user inputs of a generation cycle
type Inputs struct {
	Resume         *Document
	ResumeText     string
	JobDescription string
}

// Resolved is the text a generation cycle runs on
type Resolved struct {
	ResumeName       string
	ResumeText       string
	JobDescription   string
	UsedSampleResume bool
	UsedSampleJob    bool
}

// Resolve validates the inputs and fills whichever one is missing from the samples
func Resolve(in Inputs) (*Resolved, error) {
	hasResume := in.Resume != nil || in.ResumeText != ""
	if !hasResume && in.JobDescription == "" {
		return nil, ErrMissingInput
	}
	if err := ValidateDocument(in.Resume); err != nil {
		return nil, err
	}

	out := &Resolved{}
	switch {
	case in.Resume != nil:
		out.ResumeName = in.Resume.Name
		out.ResumeText = DecodeResume(in.Resume, in.ResumeText)
	case in.ResumeText != "":
		out.ResumeText = in.ResumeText
	default:
		out.ResumeName = "sample_resume.txt"
		out.ResumeText = SampleResume
		out.UsedSampleResume = true
	}

	if in.JobDescription == "" {
		out.JobDescription = SampleJobDescription
		out.UsedSampleJob = true
		return out, nil
	}
	job, err := JobText(in.JobDescription)
	if err != nil {
		return nil, err
	}
	out.JobDescription = job
	return out, nil
}
