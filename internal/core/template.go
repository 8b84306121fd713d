package core

// TemplateFileName is the download name of the sample question file.
const TemplateFileName = "exam_template.csv"

// TemplateContentType is served with the sample question file.
const TemplateContentType = "text/csv"

// SampleCSV is the downloadable question template. It covers every question
// type and passes validation.
const SampleCSV = `question,type,optionA,optionB,optionC,optionD,correctAnswers
"Is the sky blue?",true-false,True,False,,,A
"Which of these are fruits?",multiple,Apple,Car,Orange,Train,A|C
"What is the capital of India?",single,Mumbai,Delhi,Kolkata,Chennai,B
"Which programming language is this course about?",single,Python,JavaScript,Java,C++,B
"Select all even numbers:",multiple,2,3,4,5,A|C`

// TemplateNotice is shown after the template is downloaded.
func TemplateNotice() Notice {
	return Notice{
		Title:       "Sample Downloaded",
		Description: "CSV template has been downloaded successfully.",
		Variant:     NoticeDefault,
	}
}
